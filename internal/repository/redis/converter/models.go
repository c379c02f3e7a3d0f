package converter

type ProductRedisModel struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Qty         int     `json:"qty"`
	Description string  `json:"description"`
	Price       int64   `json:"price"`
	ImagePath   *string `json:"image_path,omitempty"`
}
