package converter

import "time"

// ProductModel представляет запись таблицы products в PostgreSQL.
type ProductModel struct {
	ID          int64      `db:"id"`
	Name        string     `db:"name"`
	Qty         int        `db:"qty"`
	Description string     `db:"description"`
	Price       int64      `db:"price"`
	ImagePath   *string    `db:"image_path"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   *time.Time `db:"updated_at"`
}

// SaleModel представляет запись таблицы sales в PostgreSQL.
type SaleModel struct {
	ID          int64  `db:"id"`
	ProductID   int64  `db:"product_id"`
	ProductName string `db:"product_name"`
	Price       int64  `db:"price"`
	Timestamp   int64  `db:"timestamp"`
}

// OutboxEventModel представляет запись таблицы outbox_events в PostgreSQL.
type OutboxEventModel struct {
	ID          int64      `db:"id"`
	EventID     string     `db:"event_id"`
	EventType   string     `db:"event_type"`
	ProductID   int64      `db:"product_id"`
	Payload     []byte     `db:"payload"`
	Status      string     `db:"status"`
	CreatedAt   time.Time  `db:"created_at"`
	ProcessedAt *time.Time `db:"processed_at"`
}
