package domain

// Image описывает фотографию товара, которая хранится в S3
type Image struct {
	ID        string // uuid
	Bucket    string
	ObjectKey string
	Bytes     []byte
	Size      int64
	MimeType  string // Example: "image/jpeg"
}

func NewImage(id string, bucket string, objectKey string, data []byte, size int64, mimeType string) *Image {
	return &Image{
		ID:        id,
		Bucket:    bucket,
		ObjectKey: objectKey,
		Bytes:     data,
		Size:      size,
		MimeType:  mimeType,
	}
}
