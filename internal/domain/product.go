package domain

import "github.com/shopspring/decimal"

// Product описывает товар каталога
type Product struct {
	ID          int64
	Name        string          `validate:"required,notblank,max=200"`
	Description string          `validate:"max=1000"`
	Price       decimal.Decimal // NUMERIC(18,2)
	ImageURL    string          `validate:"max=500"` // относительный путь или URL, существование не проверяется
}

func NewProduct(id int64, name, description string, price decimal.Decimal, imageURL string) *Product {
	return &Product{
		ID:          id,
		Name:        name,
		Description: description,
		Price:       price,
		ImageURL:    imageURL,
	}
}
