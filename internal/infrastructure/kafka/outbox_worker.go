package kafka

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/innovadata/inventario-backend/internal/cfg"
	"github.com/innovadata/inventario-backend/internal/usecase"
	"github.com/innovadata/inventario-backend/pkg/e"
	"github.com/innovadata/inventario-backend/pkg/jitter"
	"github.com/innovadata/inventario-backend/pkg/logger"
	"github.com/jackc/pgx/v5"
)

const (
	outboxChannel = "outbox_pending"

	reconnectBase = time.Second
	reconnectMax  = 30 * time.Second
)

// OutboxWorker публикует события изменения склада из outbox в Kafka.
// Просыпается по NOTIFY outbox_pending и выгребает таблицу пачками
// размера KafkaCfg.BatchSize; остатки с прошлого запуска выгребаются на старте.
type OutboxWorker struct {
	repo      usecase.OutboxRepository
	logger    logger.Logger
	producer  usecase.MessageProducer
	batchSize int
	stop      chan struct{}
	wg        sync.WaitGroup
	dbConnStr string
}

func NewOutboxWorker(
	repo usecase.OutboxRepository,
	logger logger.Logger,
	producer usecase.MessageProducer,
	kafkaCfg *cfg.KafkaCfg,
	dbConnStr string,
) *OutboxWorker {
	return &OutboxWorker{
		repo:      repo,
		logger:    logger,
		producer:  producer,
		batchSize: kafkaCfg.BatchSize,
		stop:      make(chan struct{}),
		dbConnStr: dbConnStr,
	}
}

func (w *OutboxWorker) Start(ctx context.Context) {
	w.wg.Add(2)
	go func() {
		defer w.wg.Done()
		w.drainStartupBacklog(ctx)
	}()

	go func() {
		defer w.wg.Done()
		w.listenOutboxNotifications(ctx)
	}()
}

func (w *OutboxWorker) Stop() {
	close(w.stop)
	w.wg.Wait()
}

// drainStartupBacklog выгребает события, накопившиеся между запусками:
// для них NOTIFY уже отзвучал и больше не повторится.
func (w *OutboxWorker) drainStartupBacklog(ctx context.Context) {
	w.logger.Infof("Draining pending inventory events on startup...")
	w.drainOutbox(ctx)

	<-ctx.Done()
	w.logger.Infof("Outbox worker stopped by context cancellation")
}

func (w *OutboxWorker) listenOutboxNotifications(ctx context.Context) {
	var conn *pgx.Conn
	var err error

	connect := func() error {
		conn, err = pgx.Connect(ctx, w.dbConnStr)
		if err != nil {
			return e.Wrap("failed to connect for LISTEN", err)
		}

		_, err = conn.Exec(ctx, "LISTEN "+outboxChannel)
		if err != nil {
			conn.Close(ctx)
			return e.Wrap("failed to LISTEN", err)
		}

		w.logger.Infof("Subscribed to %q channel", outboxChannel)
		return nil
	}

	if err := connect(); err != nil {
		w.logger.Warnf("Initial outbox LISTEN connect failed: %v", err)
		return
	}
	defer conn.Close(ctx)

	reconnects := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.stop:
			return
		default:
			ctxWithTimeout, cancel := context.WithTimeout(ctx, 30*time.Second)
			notif, err := conn.WaitForNotification(ctxWithTimeout)
			cancel()

			if err != nil {
				if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
					continue
				}

				w.logger.Warnf("Outbox LISTEN connection lost: %v. Reconnecting...", err)
				conn.Close(ctx)

				delay := jitter.ExponentialBackoff(reconnectBase, reconnectMax, reconnects, jitter.DefaultJitter)
				reconnects++
				select {
				case <-time.After(delay):
				case <-ctx.Done():
					return
				case <-w.stop:
					return
				}

				if err := connect(); err != nil {
					w.logger.Warnf("Outbox LISTEN reconnect failed: %v", err)
				} else {
					reconnects = 0
				}
				continue
			}

			if notif != nil && notif.Channel == outboxChannel {
				w.logger.Debugf("Outbox notification received, draining inventory events")
				w.drainOutbox(ctx)
			}
		}
	}
}

// drainOutbox выгребает outbox пачками, пока таблица не опустеет.
func (w *OutboxWorker) drainOutbox(ctx context.Context) {
	for {
		hasMore, err := w.processBatch(ctx)
		if err != nil {
			w.logger.Warnf("Outbox batch processing failed: %v", err)
			return
		}
		if !hasMore {
			return
		}
	}
}

func (w *OutboxWorker) processBatch(ctx context.Context) (bool, error) {
	events, err := w.repo.GetAndMarkAsProcessing(ctx, w.batchSize)
	if err != nil {
		return false, err
	}

	if len(events) == 0 {
		return false, nil
	}

	for _, event := range events {
		if err := w.processEvent(ctx, event); err != nil {
			continue
		}
		if err := w.repo.MarkAsProcessed(ctx, event.ID); err != nil {
			w.logger.Warnf("mark processed failed: %v", err)
		}
	}

	return true, nil
}

func (w *OutboxWorker) processEvent(ctx context.Context, event *usecase.OutboxEvent) error {
	err := w.producer.WriteRawMessage(ctx, usecase.NewWriteRawMessageReq(event.ProductID, event.Payload))
	if err != nil {
		// Временная недоступность брокера: событие останется в processing
		// и будет подхвачено следующим дренажем
		if isRetryableError(err) {
			return e.Wrap("Temporary Kafka failure, will retry", err)
		}
		return e.Wrap("Permanent Kafka failure", err)
	}
	return nil
}

func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	retryablePhrases := []string{
		"connection refused",
		"i/o timeout",
		"network is unreachable",
		"broker not available",
		"connection reset",
		"broken pipe",
		"no such host",
	}
	for _, phrase := range retryablePhrases {
		if strings.Contains(errStr, phrase) {
			return true
		}
	}
	return false
}
