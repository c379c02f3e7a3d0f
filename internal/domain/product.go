package domain

import "time"

// Product описывает товар на складе
type Product struct {
	ID          int64
	Name        string
	Qty         int // остаток на складе, по контракту не опускается ниже нуля
	Description string
	PriceCents  int64 // Цена за единицу хранится в центах
	ImagePath   *string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}

func NewProduct(name string, qty int, description string, priceCents int64, imagePath *string) *Product {
	return &Product{
		Name:        name,
		Qty:         qty,
		Description: description,
		PriceCents:  priceCents,
		ImagePath:   imagePath,
	}
}
