package postgres

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/innovadata/inventario-backend/internal/usecase"
	"github.com/innovadata/inventario-backend/pkg/e"
	"github.com/innovadata/inventario-backend/pkg/jitter"
	"github.com/innovadata/inventario-backend/pkg/logger"
	"github.com/jackc/pgx/v5"
)

const (
	changeChannel = "inventory_changed"

	reconnectBase = time.Second
	reconnectMax  = 30 * time.Second
)

// ChangeListener слушает NOTIFY inventory_changed и будит живые представления.
// Репозитории шлют NOTIFY из каждой мутации, поэтому изменения, сделанные
// другим экземпляром приложения мимо этого процесса, тоже долетают до подписок.
// Полезная нагрузка уведомления — имя темы ("products" или "sales").
type ChangeListener struct {
	dbConnStr string
	notifier  usecase.ChangeNotifier
	logger    logger.Logger
	stop      chan struct{}
	wg        sync.WaitGroup
}

func NewChangeListener(dbConnStr string, notifier usecase.ChangeNotifier, logger logger.Logger) *ChangeListener {
	return &ChangeListener{
		dbConnStr: dbConnStr,
		notifier:  notifier,
		logger:    logger,
		stop:      make(chan struct{}),
	}
}

func (l *ChangeListener) Start(ctx context.Context) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		l.listen(ctx)
	}()
}

func (l *ChangeListener) Stop() {
	close(l.stop)
	l.wg.Wait()
}

func (l *ChangeListener) listen(ctx context.Context) {
	var conn *pgx.Conn
	var err error

	connect := func() error {
		conn, err = pgx.Connect(ctx, l.dbConnStr)
		if err != nil {
			return e.Wrap("failed to connect for LISTEN", err)
		}

		_, err = conn.Exec(ctx, "LISTEN "+changeChannel)
		if err != nil {
			conn.Close(ctx)
			return e.Wrap("failed to LISTEN", err)
		}

		l.logger.Infof("Subscribed to %q channel", changeChannel)
		return nil
	}

	if err := connect(); err != nil {
		l.logger.Warnf("Initial change LISTEN connect failed: %v", err)
		return
	}
	defer conn.Close(ctx)

	reconnects := 0
	for {
		select {
		case <-ctx.Done():
			return
		case <-l.stop:
			return
		default:
			ctxWithTimeout, cancel := context.WithTimeout(ctx, 30*time.Second)
			notif, err := conn.WaitForNotification(ctxWithTimeout)
			cancel()

			if err != nil {
				if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
					continue
				}

				l.logger.Warnf("Change LISTEN connection lost: %v. Reconnecting...", err)
				conn.Close(ctx)

				delay := jitter.ExponentialBackoff(reconnectBase, reconnectMax, reconnects, jitter.DefaultJitter)
				reconnects++
				select {
				case <-time.After(delay):
				case <-ctx.Done():
					return
				case <-l.stop:
					return
				}

				if err := connect(); err != nil {
					l.logger.Warnf("Change LISTEN reconnect failed: %v", err)
				} else {
					reconnects = 0
				}
				continue
			}

			if notif != nil && notif.Channel == changeChannel {
				l.handleNotification(notif.Payload)
			}
		}
	}
}

// handleNotification транслирует полезную нагрузку NOTIFY в публикацию темы.
func (l *ChangeListener) handleNotification(payload string) {
	switch payload {
	case usecase.TopicProducts, usecase.TopicSales:
		l.notifier.Publish(payload)
	default:
		l.logger.Warnf("Unknown change notification payload %q, ignoring", payload)
	}
}
