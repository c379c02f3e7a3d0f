package watch

import (
	"context"
	"sync"

	"github.com/innovadata/inventario-backend/pkg/logger"
)

// QueryFunc вычисляет очередной снимок данных подписки.
type QueryFunc[T any] func(ctx context.Context) (T, error)

// Hub рассылает подписчикам уведомления об изменении таблиц.
// Публикация не блокируется: повторные уведомления схлопываются,
// пока подписчик перечитывает свой запрос.
type Hub struct {
	logger logger.Logger

	mu     sync.Mutex
	nextID int64
	subs   map[string]map[int64]chan struct{}
	closed bool
}

func NewHub(logger logger.Logger) *Hub {
	return &Hub{
		logger: logger,
		subs:   make(map[string]map[int64]chan struct{}),
	}
}

// Publish будит подписчиков темы. Безопасен из любых горутин.
func (h *Hub) Publish(topic string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}

	for _, trigger := range h.subs[topic] {
		select {
		case trigger <- struct{}{}:
		default: // перечитывание уже запланировано
		}
	}
}

// Close отключает всех подписчиков от дальнейших публикаций.
// Сами подписки завершаются отменой их контекстов.
func (h *Hub) Close() {
	h.mu.Lock()
	h.closed = true
	h.subs = make(map[string]map[int64]chan struct{})
	h.mu.Unlock()
}

func (h *Hub) register(topics []string) (int64, chan struct{}, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return 0, nil, false
	}

	h.nextID++
	id := h.nextID
	trigger := make(chan struct{}, 1)
	for _, topic := range topics {
		if h.subs[topic] == nil {
			h.subs[topic] = make(map[int64]chan struct{})
		}
		h.subs[topic][id] = trigger
	}

	return id, trigger, true
}

func (h *Hub) unregister(id int64, topics []string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, topic := range topics {
		delete(h.subs[topic], id)
		if len(h.subs[topic]) == 0 {
			delete(h.subs, topic)
		}
	}
}

// Subscription — живое представление одного запроса.
// Первый снимок приходит сразу, далее после каждого изменения темы.
type Subscription[T any] struct {
	updates chan T
	cancel  context.CancelFunc
}

// Updates возвращает канал снимков. Канал закрывается после Close
// или отмены контекста подписки.
func (s *Subscription[T]) Updates() <-chan T {
	return s.updates
}

func (s *Subscription[T]) Close() {
	s.cancel()
}

// Subscribe запускает живое представление запроса query над темами topics.
// Доставка — latest-wins: если получатель отстает, недоставленный снимок
// вытесняется более свежим.
func Subscribe[T any](ctx context.Context, h *Hub, query QueryFunc[T], topics ...string) *Subscription[T] {
	ctx, cancel := context.WithCancel(ctx)
	sub := &Subscription[T]{
		updates: make(chan T, 1),
		cancel:  cancel,
	}

	id, trigger, ok := h.register(topics)
	if !ok {
		cancel()
		close(sub.updates)
		return sub
	}

	go func() {
		defer close(sub.updates)
		defer h.unregister(id, topics)

		for {
			value, err := query(ctx)
			if err != nil {
				if ctx.Err() == nil {
					h.logger.Warnf("live query failed: %v", err)
				}
			} else {
				push(sub.updates, value)
			}

			select {
			case <-ctx.Done():
				return
			case <-trigger:
			}
		}
	}()

	return sub
}

// push кладет снимок в канал, вытесняя недоставленный предыдущий.
func push[T any](ch chan T, value T) {
	for {
		select {
		case ch <- value:
			return
		default:
		}

		select {
		case <-ch:
		default:
		}
	}
}
