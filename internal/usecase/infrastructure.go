package usecase

import "context"

type ImagesInfra interface {
	UploadPhoto(ctx context.Context, req *UploadPhotoReq) (string, error)
	CleanupPhoto(key string)
}

type MessageProducer interface {
	WriteRawMessage(ctx context.Context, req *WriteRawMessageReq) error
}

// ChangeNotifier доставляет подписчикам уведомление об изменении таблицы,
// чтобы живые представления перечитали свои запросы.
type ChangeNotifier interface {
	Publish(topic string)
}
