package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"mercprd/internal/apperrors"
	"mercprd/internal/models"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// GetAll retrieves all products ordered by name.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("nome ASC").Order("id ASC").Find(&products).Error; err != nil {
		return nil, apperrors.NewStoreError("list products", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID.
func (r *GORMProductRepository) GetByID(id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product with ID %d: %w", id, apperrors.ErrProductNotFound)
		}
		return nil, apperrors.NewStoreError(fmt.Sprintf("get product %d", id), err)
	}
	return &product, nil
}

// Create inserts product and fills in the id assigned by the store.
func (r *GORMProductRepository) Create(product *models.Product) error {
	product.ID = 0
	if err := r.db.Create(product).Error; err != nil {
		return apperrors.NewStoreError("create product", err)
	}
	return nil
}

// Update overwrites name, price and quantity of an existing product.
func (r *GORMProductRepository) Update(product *models.Product) error {
	res := r.db.Model(&models.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"nome":       product.Name,
			"preco":      product.Price,
			"quantidade": product.Quantity,
		})
	if res.Error != nil {
		return apperrors.NewStoreError(fmt.Sprintf("update product %d", product.ID), res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %d: %w", product.ID, apperrors.ErrProductNotFound)
	}
	return nil
}

// Delete deletes a product by its ID.
func (r *GORMProductRepository) Delete(id int64) error {
	res := r.db.Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return apperrors.NewStoreError(fmt.Sprintf("delete product %d", id), res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("product with ID %d: %w", id, apperrors.ErrProductNotFound)
	}
	return nil
}
