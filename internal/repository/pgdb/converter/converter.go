//go:generate goverter gen github.com/innovadata/inventario-backend/internal/repository/pgdb/converter
package converter

import (
	"time"

	"github.com/innovadata/inventario-backend/internal/domain"
	"github.com/innovadata/inventario-backend/internal/usecase"
)

// ProductConverter преобразует сущности Product между domain и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
type ProductConverter interface {
	ToModel(entity *domain.Product) *ProductModel
	ToEntity(model *ProductModel) *domain.Product
	ToArrEntity(models []*ProductModel) []domain.Product
}

// SaleConverter преобразует сущности Sale между domain и моделью PostgreSQL.
// goverter:converter
type SaleConverter interface {
	ToModel(entity *domain.Sale) *SaleModel
	ToEntity(model *SaleModel) *domain.Sale
	ToArrEntity(models []*SaleModel) []domain.Sale
}

// OutboxEventConverter преобразует сущности OutboxEvent между usecase и моделью PostgreSQL.
// goverter:converter
// goverter:extend ConvertTime
// goverter:extend ConvertPointerTime
// goverter:extend ConvertOutBoxStatus
// goverter:extend ConvertOutboxEventType
type OutboxEventConverter interface {
	ToModel(entity *usecase.OutboxEvent) *OutboxEventModel
	ToEntity(model *OutboxEventModel) *usecase.OutboxEvent
	ToArrEntity(models []*OutboxEventModel) []*usecase.OutboxEvent
}

func ConvertPointerTime(t *time.Time) *time.Time {
	return t
}

func ConvertTime(t time.Time) time.Time {
	return t
}

func ConvertOutBoxStatus(s usecase.OutboxStatus) usecase.OutboxStatus {
	return s
}

func ConvertOutboxEventType(t usecase.OutboxEventType) usecase.OutboxEventType {
	return t
}
