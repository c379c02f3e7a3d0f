package usecase

import "github.com/innovadata/inventario-backend/internal/domain"

// Границы «заканчивающегося» остатка для сводки.
const (
	lowStockMin = 1
	lowStockMax = 4
)

// ComputeStatistics — чистая функция над снимком товаров и выручкой журнала продаж.
// Никаких побочных эффектов: вызывающий сам решает, какой снимок агрегировать.
func ComputeStatistics(products []domain.Product, totalRevenueCents int64) *StatisticsRes {
	res := &StatisticsRes{
		TotalProducts:     len(products),
		TotalRevenueCents: totalRevenueCents,
	}

	for _, p := range products {
		res.TotalUnits += p.Qty
		res.TotalValueCents += int64(p.Qty) * p.PriceCents
		if p.Qty >= lowStockMin && p.Qty <= lowStockMax {
			res.LowStockCount++
		}
	}

	return res
}
