package domain

// Sale описывает завершенную продажу. Название и цена — снимок товара
// на момент продажи: запись остается корректной даже после редактирования
// или удаления товара. Продажи не изменяются и не удаляются.
type Sale struct {
	ID          int64
	ProductID   int64
	ProductName string
	PriceCents  int64
	Timestamp   int64 // миллисекунды с эпохи
}

// NewSale формирует снимок продажи одной единицы товара.
func NewSale(product *Product, timestampMs int64) *Sale {
	return &Sale{
		ProductID:   product.ID,
		ProductName: product.Name,
		PriceCents:  product.PriceCents,
		Timestamp:   timestampMs,
	}
}
