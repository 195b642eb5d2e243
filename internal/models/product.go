package models

// Product is a stock item in the produtos table.
type Product struct {
	ID       int64   `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Name     string  `json:"name" gorm:"column:nome;not null"`
	Price    float64 `json:"price" gorm:"column:preco;not null" validate:"gte=0"`
	Quantity int     `json:"quantity" gorm:"column:quantidade;not null" validate:"gte=0"`
}

// TableName maps Product onto the legacy produtos table.
func (Product) TableName() string { return "produtos" }

// ProductChanges carries the optional fields of a product edit. A nil field
// is left unchanged; Price and Quantity hold the raw user input.
type ProductChanges struct {
	Name     *string
	Price    *string
	Quantity *string
}

// Empty reports whether no field was provided.
func (c ProductChanges) Empty() bool {
	return c.Name == nil && c.Price == nil && c.Quantity == nil
}
