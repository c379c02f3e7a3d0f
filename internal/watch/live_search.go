package watch

import (
	"context"
	"sync"
	"time"

	"github.com/innovadata/inventario-backend/internal/domain"
	"github.com/innovadata/inventario-backend/pkg/logger"
)

// SearchFunc выполняет поиск товаров по подстроке имени.
type SearchFunc func(ctx context.Context, query string) ([]domain.Product, error)

// SearchResult — снимок выдачи для конкретного текста запроса.
type SearchResult struct {
	Query    string
	Products []domain.Product
}

// LiveSearch поддерживает живую выдачу поиска. Быстрый ввод гасится окном
// debounce: выполняется только запрос, переживший паузу в наборе. Изменение
// таблицы товаров перечитывает текущий запрос немедленно, без окна.
//
// Доставляется только выдача последнего запроса. Поколение присваивается в
// момент поступления ввода, поэтому их порядок совпадает с порядком запросов;
// выполнение с устаревшим поколением отменяется, его результат отбрасывается.
type LiveSearch struct {
	search SearchFunc
	hub    *Hub
	window time.Duration
	logger logger.Logger

	results chan SearchResult

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once

	mu        sync.Mutex
	query     string
	gen       uint64
	pending   *time.Timer
	runCancel context.CancelFunc
}

// NewLiveSearch сразу доставляет снимок пустого запроса (все товары).
func NewLiveSearch(search SearchFunc, hub *Hub, window time.Duration, logger logger.Logger, topics ...string) *LiveSearch {
	ctx, cancel := context.WithCancel(context.Background())
	s := &LiveSearch{
		search:  search,
		hub:     hub,
		window:  window,
		logger:  logger,
		results: make(chan SearchResult, 1),
		ctx:     ctx,
		cancel:  cancel,
	}

	if id, trigger, ok := hub.register(topics); ok {
		s.wg.Add(1)
		go s.watchChanges(id, trigger, topics)
	}

	s.run("", s.nextGen())

	return s
}

// Results возвращает канал снимков выдачи. Канал закрывается в Close.
func (s *LiveSearch) Results() <-chan SearchResult {
	return s.results
}

// UpdateQuery заменяет текст запроса. Выполнение откладывается на окно
// debounce; каждый новый вызов сдвигает окно заново. Поколение фиксируется
// здесь, до таймера: даже если таймер старого запроса успел сработать,
// его run отсечется проверкой поколения.
func (s *LiveSearch) UpdateQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.query = query
	s.gen++
	gen := s.gen

	if s.pending != nil {
		s.pending.Stop()
	}
	s.pending = time.AfterFunc(s.window, func() { s.run(query, gen) })
}

// Close останавливает подписку и дожидается выполняющихся поисков.
// Повторные вызовы безопасны.
func (s *LiveSearch) Close() {
	s.closeOnce.Do(func() {
		s.mu.Lock()
		if s.pending != nil {
			s.pending.Stop()
		}
		s.cancel()
		s.mu.Unlock()

		s.wg.Wait()
		close(s.results)
	})
}

func (s *LiveSearch) nextGen() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	return s.gen
}

func (s *LiveSearch) watchChanges(id int64, trigger chan struct{}, topics []string) {
	defer s.wg.Done()
	defer s.hub.unregister(id, topics)

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-trigger:
			s.mu.Lock()
			query := s.query
			s.gen++
			gen := s.gen
			s.mu.Unlock()

			s.run(query, gen)
		}
	}
}

// run запускает выполнение запроса поколения gen, отменяя предыдущее
// незавершенное. Запрос с уже устаревшим поколением не запускается вовсе.
func (s *LiveSearch) run(query string, gen uint64) {
	s.mu.Lock()
	if s.ctx.Err() != nil || gen != s.gen {
		s.mu.Unlock()
		return
	}
	if s.runCancel != nil {
		s.runCancel()
	}
	ctx, cancel := context.WithCancel(s.ctx)
	s.runCancel = cancel
	s.wg.Add(1)
	s.mu.Unlock()

	go func() {
		defer s.wg.Done()

		products, err := s.search(ctx, query)
		if err != nil {
			if ctx.Err() == nil {
				s.logger.Warnf("live search %q failed: %v", query, err)
			}
			return
		}

		// Проверка поколения и доставка под одним замком: запоздавший результат
		// старого запроса не может вытеснить уже доставленный более свежий.
		// push не блокируется, держать замок безопасно.
		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.gen {
			return
		}
		push(s.results, SearchResult{Query: query, Products: products})
	}()
}
