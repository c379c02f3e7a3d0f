package usecase

import (
	"time"
)

// Топики уведомлений об изменениях для живых представлений.
const (
	TopicProducts = "products"
	TopicSales    = "sales"
)

// INVENTORY USECASE

// AddProductReq — запрос на добавление нового товара.
type AddProductReq struct {
	Name        string
	Qty         int
	Description string
	PriceCents  int64
	Photo       *ProductPhoto
}

// UpdateProductReq — полная замена записи товара по его ID.
type UpdateProductReq struct {
	ID          int64
	Name        string
	Qty         int
	Description string
	PriceCents  int64
	ImagePath   *string
	Photo       *ProductPhoto
}

// ProductPhoto представляет фотографию, загруженную через multipart/form-data.
type ProductPhoto struct {
	Data     []byte // байты изображения
	MimeType string // Content-Type из multipart (image/jpeg)
	Size     int64  // фактический размер в байтах
	Name     string // оригинальное имя файла (для логов)
}

// SellOneRes — результат продажи одной единицы.
// Sold == false означает, что остаток был нулевым и записи не менялись.
type SellOneRes struct {
	Sold    bool
	Product *ProductSnapshot
	SaleID  int64
}

// ProductSnapshot — состояние товара после операции.
type ProductSnapshot struct {
	ID         int64
	Name       string
	Qty        int
	PriceCents int64
}

// ImportResult — одноразовое уведомление о завершившемся импорте.
type ImportResult struct {
	Imported   int // все вставленные строки, включая дубликаты
	Duplicates int
}

// StatisticsRes — агрегаты по снимку склада и журналу продаж.
type StatisticsRes struct {
	TotalProducts     int
	TotalUnits        int
	TotalValueCents   int64 // сумма qty*price
	LowStockCount     int   // товары с остатком от 1 до 4 включительно
	TotalRevenueCents int64
}

// INFRASTRUCTURE

// UploadPhotoReq — запрос на сохранение фотографии товара.
type UploadPhotoReq struct {
	ProductName string
	Photo       *ProductPhoto
}

type WriteRawMessageReq struct {
	ProductID int64
	Payload   []byte
}

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
)

type OutboxEventType string

const (
	ProductCreated   OutboxEventType = "product_created"
	ProductUpdated   OutboxEventType = "product_updated"
	ProductDeleted   OutboxEventType = "product_deleted"
	ProductSold      OutboxEventType = "product_sold"
	ProductsImported OutboxEventType = "products_imported"
)

// OutboxEvent — запись transactional outbox с JSON-полезной нагрузкой.
type OutboxEvent struct {
	ID          int64
	EventID     string // uuid
	EventType   OutboxEventType
	ProductID   int64
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// MAPPERS

func NewAddProductReq(name string, qty int, description string, priceCents int64, photo *ProductPhoto) *AddProductReq {
	return &AddProductReq{
		Name:        name,
		Qty:         qty,
		Description: description,
		PriceCents:  priceCents,
		Photo:       photo,
	}
}

func NewProductPhoto(data []byte, mimeType string, size int64, name string) *ProductPhoto {
	return &ProductPhoto{
		Data:     data,
		MimeType: mimeType,
		Size:     size,
		Name:     name,
	}
}

func NewUploadPhotoReq(productName string, photo *ProductPhoto) *UploadPhotoReq {
	return &UploadPhotoReq{
		ProductName: productName,
		Photo:       photo,
	}
}

func NewWriteRawMessageReq(productID int64, payload []byte) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		ProductID: productID,
		Payload:   payload,
	}
}

func NewOutboxEvent(eventID string, eventType OutboxEventType, productID int64, payload []byte) *OutboxEvent {
	return &OutboxEvent{
		EventID:   eventID,
		EventType: eventType,
		ProductID: productID,
		Payload:   payload,
		Status:    Pending,
		CreatedAt: time.Now(),
	}
}
