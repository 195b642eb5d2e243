package repositories_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mercprd/internal/apperrors"
	"mercprd/internal/models"
	"mercprd/internal/repositories"
	"mercprd/internal/testdb"
)

type backend struct {
	name     string
	accounts func(t *testing.T) repositories.AccountRepository
	products func(t *testing.T) repositories.ProductRepository
}

var backends = []backend{
	{
		name: "gorm",
		accounts: func(t *testing.T) repositories.AccountRepository {
			return repositories.NewGORMAccountRepository(testdb.OpenMigrated(t))
		},
		products: func(t *testing.T) repositories.ProductRepository {
			return repositories.NewGORMProductRepository(testdb.OpenMigrated(t))
		},
	},
	{
		name: "memory",
		accounts: func(t *testing.T) repositories.AccountRepository {
			return repositories.NewMemoryAccountRepository()
		},
		products: func(t *testing.T) repositories.ProductRepository {
			return repositories.NewMemoryProductRepository()
		},
	},
}

func TestAccountRepository(t *testing.T) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			repo := b.accounts(t)

			hasAdmin, err := repo.HasAdmin()
			require.NoError(t, err)
			assert.False(t, hasAdmin)

			require.NoError(t, repo.Create(&models.Account{Username: "root", Password: "h1", IsAdmin: true}))
			require.NoError(t, repo.Create(&models.Account{Username: "bob", Password: "h2"}))
			require.NoError(t, repo.Create(&models.Account{Username: "alice", Password: "h3"}))

			hasAdmin, err = repo.HasAdmin()
			require.NoError(t, err)
			assert.True(t, hasAdmin)

			err = repo.Create(&models.Account{Username: "bob", Password: "other"})
			assert.ErrorIs(t, err, apperrors.ErrDuplicateUsername)

			err = repo.Create(&models.Account{Username: "mallory", Password: "h4", IsAdmin: true})
			assert.ErrorIs(t, err, apperrors.ErrAdminAlreadyExists)

			accounts, err := repo.List()
			require.NoError(t, err)
			require.Len(t, accounts, 3)
			assert.Equal(t, "alice", accounts[0].Username)
			assert.Equal(t, "bob", accounts[1].Username)
			assert.Equal(t, "root", accounts[2].Username)
			assert.True(t, bool(accounts[2].IsAdmin))

			require.NoError(t, repo.UpdatePassword("bob", "h5"))
			bob, err := repo.GetByUsername("bob")
			require.NoError(t, err)
			assert.Equal(t, "h5", bob.Password)
			assert.False(t, bool(bob.IsAdmin))

			assert.ErrorIs(t, repo.UpdatePassword("nobody", "x"), apperrors.ErrAccountNotFound)

			require.NoError(t, repo.Delete("bob"))
			_, err = repo.GetByUsername("bob")
			assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
			assert.ErrorIs(t, repo.Delete("bob"), apperrors.ErrAccountNotFound)
		})
	}
}

func TestProductRepository(t *testing.T) {
	for _, b := range backends {
		t.Run(b.name, func(t *testing.T) {
			repo := b.products(t)

			rice := &models.Product{Name: "Rice", Price: 5.5, Quantity: 100}
			require.NoError(t, repo.Create(rice))
			assert.NotZero(t, rice.ID)

			beans := &models.Product{Name: "Beans", Price: 7.25, Quantity: 40}
			require.NoError(t, repo.Create(beans))
			assert.Greater(t, beans.ID, rice.ID)

			products, err := repo.GetAll()
			require.NoError(t, err)
			require.Len(t, products, 2)
			assert.Equal(t, "Beans", products[0].Name)
			assert.Equal(t, "Rice", products[1].Name)

			beans.Quantity = 0
			beans.Name = "Black beans"
			require.NoError(t, repo.Update(beans))
			got, err := repo.GetByID(beans.ID)
			require.NoError(t, err)
			assert.Equal(t, "Black beans", got.Name)
			assert.Equal(t, 0, got.Quantity)
			assert.InDelta(t, 7.25, got.Price, 1e-9)

			require.NoError(t, repo.Delete(beans.ID))
			_, err = repo.GetByID(beans.ID)
			assert.ErrorIs(t, err, apperrors.ErrProductNotFound)
			assert.ErrorIs(t, repo.Delete(beans.ID), apperrors.ErrProductNotFound)
			assert.ErrorIs(t, repo.Update(beans), apperrors.ErrProductNotFound)

			coffee := &models.Product{Name: "Coffee", Price: 12, Quantity: 3}
			require.NoError(t, repo.Create(coffee))
			assert.Greater(t, coffee.ID, beans.ID)
		})
	}
}

func TestGORMProductRepository_StoreError(t *testing.T) {
	db := testdb.Open(t) // no schema: every query fails
	repo := repositories.NewGORMProductRepository(db)

	_, err := repo.GetAll()
	assert.True(t, apperrors.IsStoreError(err))

	err = repo.Create(&models.Product{Name: "Rice"})
	assert.True(t, apperrors.IsStoreError(err))
}
