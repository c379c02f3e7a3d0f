package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/google/uuid"
	"github.com/innovadata/inventario-backend/internal/domain"
	"github.com/innovadata/inventario-backend/pkg/e"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const importTimeout = 5 * time.Minute

// ImportCSV загружает товары из текстового CSV.
//
// Формат: первая строка — всегда заголовок и отбрасывается; разделитель `;` или `,`;
// колонки [name, qty, price, description]. Строки с пустым именем молча пропускаются.
// Нечисловые qty/price приводятся к нулю, строка не отклоняется. Дубликаты ищутся по
// имени (без регистра, с обрезкой пробелов) среди уже сохраненных товаров и ранее
// обработанных строк этого же файла; дубликаты учитываются счетчиком, но все равно
// вставляются. Счетчик imported включает и дубликаты.
//
// Строки вставляются последовательно, каждая в своей транзакции: сбой в середине
// оставляет уже вставленные товары и прерывает остаток файла.
func (i *InventoryUseCase) ImportCSV(ctx context.Context, rawContent string) (*ImportResult, error) {
	const op = "InventoryUseCase.ImportCSV"

	existing, err := i.productRepo.GetAll(ctx)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	seen := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		seen[strings.ToLower(strings.TrimSpace(p.Name))] = struct{}{}
	}

	lines := strings.Split(strings.ReplaceAll(rawContent, "\r\n", "\n"), "\n")
	if len(lines) <= 1 {
		return &ImportResult{}, nil
	}

	var imported, duplicates int
	// Первая строка — заголовок, отбрасывается независимо от содержимого
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}

		name, qty, priceCents, description := parseImportRow(line)
		if name == "" {
			continue
		}

		lowered := strings.ToLower(name)
		if _, ok := seen[lowered]; ok {
			duplicates++
		} else {
			seen[lowered] = struct{}{}
		}

		if err := i.insertImportedProduct(ctx, name, qty, priceCents, description); err != nil {
			if imported > 0 {
				i.notifier.Publish(TopicProducts)
			}
			return nil, e.Wrap(op, err)
		}
		imported++
	}

	if imported > 0 {
		i.notifier.Publish(TopicProducts)
		i.emitImportEvent(ctx, imported, duplicates)
	}

	return &ImportResult{Imported: imported, Duplicates: duplicates}, nil
}

// RunImport выполняет импорт в фоне, не блокируя обработку запроса,
// и публикует одноразовый результат. Любой сбой сводится к нулевым счетчикам.
func (i *InventoryUseCase) RunImport(rawContent string) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		res, err := i.ImportCSV(ctx, rawContent)
		if err != nil {
			i.logger.Warnf("CSV import failed: %v", err)
			res = &ImportResult{}
		}

		i.importMu.Lock()
		i.lastImport = res
		i.importMu.Unlock()
	}()
}

// LastImportResult возвращает результат последнего импорта или nil, если его нет
// или он уже был очищен.
func (i *InventoryUseCase) LastImportResult() *ImportResult {
	i.importMu.Lock()
	defer i.importMu.Unlock()

	if i.lastImport == nil {
		return nil
	}

	res := *i.lastImport
	return &res
}

func (i *InventoryUseCase) ClearImportResult() {
	i.importMu.Lock()
	i.lastImport = nil
	i.importMu.Unlock()
}

// insertImportedProduct вставляет одну строку импорта в отдельной транзакции.
func (i *InventoryUseCase) insertImportedProduct(ctx context.Context, name string, qty int, priceCents int64, description string) error {
	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, i.dbPool)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	_, err = i.productRepo.Insert(ctx, domain.NewProduct(name, qty, description, priceCents, nil))
	if err != nil {
		return err
	}

	err = tx.Commit(ctx)
	return err
}

// emitImportEvent пишет сводное outbox-событие об импорте; неудача не отменяет импорт.
func (i *InventoryUseCase) emitImportEvent(ctx context.Context, imported, duplicates int) {
	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, i.dbPool)
	if err != nil {
		i.logger.Warnf("Failed to open transaction for import event: %v", err)
		return
	}
	defer func() {
		if err != nil && tx.IsActive() {
			tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, "tx", tx.Transaction())

	payload := []byte(`{"imported":` + strconv.Itoa(imported) + `,"duplicates":` + strconv.Itoa(duplicates) + `}`)
	if _, err = i.outboxRepo.Create(ctx, NewOutboxEvent(uuid.NewString(), ProductsImported, 0, payload)); err != nil {
		i.logger.Warnf("Failed to record import event: %v", err)
		return
	}

	if err = tx.Commit(ctx); err != nil {
		i.logger.Warnf("Failed to commit import event: %v", err)
	}
}

// parseImportRow разбирает строку CSV с разделителем `;` или `,`.
// Колонки сверх четвертой игнорируются, недостающие считаются пустыми.
func parseImportRow(line string) (name string, qty int, priceCents int64, description string) {
	parts := strings.Split(strings.ReplaceAll(line, ";", ","), ",")

	field := func(idx int) string {
		if idx < len(parts) {
			return strings.TrimSpace(parts[idx])
		}
		return ""
	}

	name = field(0)
	if v, err := strconv.Atoi(field(1)); err == nil {
		qty = v
	}
	priceCents = parsePriceCents(field(2))
	description = field(3)

	return name, qty, priceCents, description
}

// parsePriceCents приводит текстовую цену к центам; мусор на входе дает 0.
func parsePriceCents(s string) int64 {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0
	}

	return d.Shift(2).Round(0).IntPart()
}
