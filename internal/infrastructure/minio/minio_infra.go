package minio

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/innovadata/inventario-backend/internal/cfg"
	"github.com/innovadata/inventario-backend/internal/domain"
	"github.com/innovadata/inventario-backend/internal/infrastructure"
	"github.com/innovadata/inventario-backend/internal/usecase"
	"github.com/innovadata/inventario-backend/pkg/e"
	"github.com/innovadata/inventario-backend/pkg/jitter"
	"github.com/innovadata/inventario-backend/pkg/logger"

	"github.com/google/uuid"
)

// MinioInfrastructure управляет загрузкой и очисткой фотографий товаров в MinIO.
type MinioInfrastructure struct {
	minioRepo   usecase.ImageRepository
	cfg         *cfg.MinIOCfg
	logger      logger.Logger
	shutdownCtx context.Context
	wg          sync.WaitGroup
}

func NewMinioInfrastructure(minioRepo usecase.ImageRepository, cfg *cfg.MinIOCfg, logger logger.Logger, shutdownCtx context.Context) *MinioInfrastructure {
	return &MinioInfrastructure{
		minioRepo:   minioRepo,
		cfg:         cfg,
		logger:      logger,
		shutdownCtx: shutdownCtx,
		wg:          sync.WaitGroup{},
	}
}

// UploadPhoto загружает фотографию товара в MinIO и возвращает ключ объекта.
// У товара всегда не больше одной фотографии, поэтому загрузка синхронная.
func (m *MinioInfrastructure) UploadPhoto(ctx context.Context, req *usecase.UploadPhotoReq) (string, error) {
	const op = "MinioInfrastructure.UploadPhoto"

	imageID := uuid.NewString()
	ext, err := infrastructure.GetExtensionFromMIME(req.Photo.MimeType)
	if err != nil {
		return "", e.Wrap(op, fmt.Errorf("invalid mime type %s for %s: %w", req.Photo.MimeType, req.Photo.Name, err))
	}

	objKey := fmt.Sprintf("%s/%s.%s", req.ProductName, imageID, ext)
	newImage := domain.NewImage(imageID, m.cfg.BucketName, objKey, req.Photo.Data, req.Photo.Size, req.Photo.MimeType)

	key, err := m.minioRepo.Upload(ctx, newImage)
	if err != nil {
		return "", e.Wrap(op, fmt.Errorf("upload %s failed: %w", req.Photo.Name, err))
	}

	return key, nil
}

// CleanupPhoto запускает фоновую очистку указанного ключа MinIO
func (m *MinioInfrastructure) CleanupPhoto(key string) {
	if key == "" {
		return
	}
	m.wg.Add(1)
	go m.cleanupUploadedKey(key)
}

// cleanupUploadedKey удаляет объект из MinIO с экспоненциальной задержкой и jitter.
func (m *MinioInfrastructure) cleanupUploadedKey(key string) {
	defer m.wg.Done() // сигнализируем завершение компенсации
	const op = "MinioInfrastructure.cleanupUploadedKey"
	m.logger.Infof("%s: Cleaning up uploaded key %s", op, key)

	// Создаём контекст с таймаутом на основе shutdownCtx
	ctx, cancel := context.WithTimeout(m.shutdownCtx, 30*time.Second)
	defer cancel()

	for attempt := 0; attempt < 3; attempt++ {
		if err := m.minioRepo.Delete(ctx, key); err == nil {
			return // Успешно удалено
		}

		// Проверяем, не отменён ли контекст
		select {
		case <-ctx.Done():
			m.logger.Warnf("cleanup interrupted by shutdown, key=%v", key)
			return
		default:
		}

		if attempt < 2 {
			sleepTime := jitter.ExponentialBackoff(time.Second, 8*time.Second, attempt, jitter.DefaultJitter)

			select {
			case <-time.After(sleepTime):
			case <-ctx.Done():
				m.logger.Warnf("cleanup interrupted by shutdown during backoff, key=%v", key)
				return
			}
		}
	}

	m.logger.Warnf("%s: giving up on key %s after 3 attempts", op, key)
}

// WaitForCleanup ожидает завершения всех фоновых задач очистки с учётом таймаута завершения приложения.
func (m *MinioInfrastructure) WaitForCleanup(shutdownTimeoutCtx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-shutdownTimeoutCtx.Done():
		return fmt.Errorf("minio cleanup timeout during shutdown: %w", shutdownTimeoutCtx.Err())
	}
}
