package services

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"mercprd/internal/apperrors"
	"mercprd/internal/models"
	"mercprd/internal/repositories"
	"mercprd/internal/validation"
)

// ProductService handles business logic related to products.
type ProductService struct {
	repo     repositories.ProductRepository
	validate *validator.Validate
	log      logrus.FieldLogger
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, log logrus.FieldLogger) *ProductService {
	if log == nil {
		log = discardLogger()
	}
	return &ProductService{
		repo:     repo,
		validate: validator.New(),
		log:      log,
	}
}

// Create parses the raw price and quantity and stores a new product.
func (s *ProductService) Create(name, price, quantity string) (*models.Product, error) {
	p, err := validation.ParsePrice(price)
	if err != nil {
		return nil, err
	}
	q, err := validation.ParseQuantity(quantity)
	if err != nil {
		return nil, err
	}

	product := &models.Product{Name: name, Price: p, Quantity: q}
	if err := s.check(product); err != nil {
		return nil, err
	}
	if err := s.repo.Create(product); err != nil {
		return nil, err
	}
	s.log.WithFields(logrus.Fields{"id": product.ID, "name": product.Name}).Info("product created")
	return product, nil
}

// List returns every product ordered by name.
func (s *ProductService) List() ([]models.Product, error) {
	return s.repo.GetAll()
}

// Get returns a single product by its id.
func (s *ProductService) Get(id int64) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// Edit applies changes to the product with the given id. All provided
// fields are parsed before anything is written, so an invalid price or
// quantity leaves the record untouched. Empty changes are a no-op.
func (s *ProductService) Edit(id int64, changes models.ProductChanges) (*models.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if changes.Empty() {
		return product, nil
	}

	updated := *product
	if changes.Name != nil {
		updated.Name = *changes.Name
	}
	if changes.Price != nil {
		if updated.Price, err = validation.ParsePrice(*changes.Price); err != nil {
			return nil, err
		}
	}
	if changes.Quantity != nil {
		if updated.Quantity, err = validation.ParseQuantity(*changes.Quantity); err != nil {
			return nil, err
		}
	}
	if err := s.check(&updated); err != nil {
		return nil, err
	}

	if err := s.repo.Update(&updated); err != nil {
		return nil, err
	}
	s.log.WithField("id", id).Info("product updated")
	return &updated, nil
}

// Delete removes a product. Confirmation is the caller's job.
func (s *ProductService) Delete(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.log.WithField("id", id).Info("product deleted")
	return nil
}

func (s *ProductService) check(product *models.Product) error {
	if err := s.validate.Struct(product); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			fields := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s failed on '%s'", fe.Field(), fe.Tag()))
			}
			return fmt.Errorf("%w: %s", apperrors.ErrInvalidNumericInput, strings.Join(fields, ", "))
		}
		return fmt.Errorf("%w: %v", apperrors.ErrInvalidNumericInput, err)
	}
	return nil
}
