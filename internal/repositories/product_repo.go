package repositories

import (
	"mercprd/internal/models"
)

// ProductRepository defines the interface for product data access.
//
// GetByID, Update and Delete return apperrors.ErrProductNotFound for
// unknown ids. Storage failures are returned as *apperrors.StoreError.
type ProductRepository interface {
	GetAll() ([]models.Product, error) // ordered by name, then id
	GetByID(id int64) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id int64) error
}
