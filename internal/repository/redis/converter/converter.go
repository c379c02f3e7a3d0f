//go:generate goverter gen github.com/innovadata/inventario-backend/internal/repository/redis/converter

package converter

import (
	"github.com/innovadata/inventario-backend/internal/domain"
)

// goverter:converter
type ProductConverter interface {
	ToRedisModel(entity *domain.Product) *ProductRedisModel
	ToEntity(model *ProductRedisModel) *domain.Product
	ToArrRedisModel(entities []domain.Product) []ProductRedisModel
	ToArrEntity(models []ProductRedisModel) []domain.Product
}
