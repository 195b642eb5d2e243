// Package seed imports a product catalog from an INI file. Each section is
// a product name with the keys preco and quantidade:
//
//	[Arroz]
//	preco = 5.50
//	quantidade = 100
package seed

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"

	"mercprd/internal/models"
)

// ProductCreator stores one product from raw price and quantity input.
type ProductCreator interface {
	Create(name, price, quantity string) (*models.Product, error)
}

// Entry is one product section of a seed file.
type Entry struct {
	Name     string
	Price    string
	Quantity string
}

// Parse reads the entries of a seed file. source is a file name or the
// raw []byte contents, as accepted by ini.Load.
func Parse(source interface{}) ([]Entry, error) {
	cfg, err := ini.Load(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var entries []Entry
	for _, section := range cfg.Sections() {
		if section.Name() == ini.DefaultSection && len(section.Keys()) == 0 {
			continue
		}
		entries = append(entries, Entry{
			Name:     section.Name(),
			Price:    section.Key("preco").String(),
			Quantity: section.Key("quantidade").String(),
		})
	}
	return entries, nil
}

// Import creates every entry of source through products. A bad entry does
// not stop the others; all failures are returned together.
func Import(products ProductCreator, source interface{}, log logrus.FieldLogger) (int, error) {
	entries, err := Parse(source)
	if err != nil {
		return 0, err
	}

	var result *multierror.Error
	created := 0
	for _, e := range entries {
		p, err := products.Create(e.Name, e.Price, e.Quantity)
		if err != nil {
			result = multierror.Append(result, fmt.Errorf("product %q: %w", e.Name, err))
			continue
		}
		created++
		if log != nil {
			log.WithFields(logrus.Fields{"id": p.ID, "name": p.Name}).Debug("seeded product")
		}
	}

	if result != nil && log != nil {
		for _, err := range result.Errors {
			log.WithError(err).Error("seed entry rejected")
		}
	}
	return created, result.ErrorOrNil()
}
