package kafka

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/innovadata/inventario-backend/internal/cfg"
	"github.com/innovadata/inventario-backend/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

type fakeOutboxRepo struct {
	mu        sync.Mutex
	pending   []*usecase.OutboxEvent
	limits    []int
	processed []int64
}

func (r *fakeOutboxRepo) Create(ctx context.Context, event *usecase.OutboxEvent) (*usecase.OutboxEvent, error) {
	return event, nil
}

func (r *fakeOutboxRepo) GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*usecase.OutboxEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.limits = append(r.limits, limit)
	n := limit
	if n > len(r.pending) {
		n = len(r.pending)
	}
	batch := r.pending[:n]
	r.pending = r.pending[n:]

	return batch, nil
}

func (r *fakeOutboxRepo) MarkAsProcessed(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.processed = append(r.processed, id)
	return nil
}

type fakeProducer struct {
	mu       sync.Mutex
	written  []int64
	writeErr error
}

func (p *fakeProducer) WriteRawMessage(ctx context.Context, req *usecase.WriteRawMessageReq) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.writeErr != nil {
		return p.writeErr
	}

	p.written = append(p.written, req.ProductID)
	return nil
}

func outboxEvents(n int) []*usecase.OutboxEvent {
	events := make([]*usecase.OutboxEvent, 0, n)
	for i := 0; i < n; i++ {
		events = append(events, &usecase.OutboxEvent{
			ID:        int64(i + 1),
			EventType: usecase.ProductSold,
			ProductID: int64(i + 1),
			Payload:   []byte(`{}`),
		})
	}

	return events
}

func TestProcessBatch_UsesConfiguredBatchSize(t *testing.T) {
	repo := &fakeOutboxRepo{pending: outboxEvents(3)}
	producer := &fakeProducer{}
	w := NewOutboxWorker(repo, nopLogger{}, producer, &cfg.KafkaCfg{BatchSize: 25}, "")

	hasMore, err := w.processBatch(context.Background())
	require.NoError(t, err)

	assert.True(t, hasMore)
	assert.Equal(t, []int{25}, repo.limits)
	assert.Equal(t, []int64{1, 2, 3}, producer.written)
	assert.Equal(t, []int64{1, 2, 3}, repo.processed)
}

func TestDrainOutbox_RunsUntilEmpty(t *testing.T) {
	repo := &fakeOutboxRepo{pending: outboxEvents(5)}
	producer := &fakeProducer{}
	w := NewOutboxWorker(repo, nopLogger{}, producer, &cfg.KafkaCfg{BatchSize: 2}, "")

	w.drainOutbox(context.Background())

	assert.Equal(t, []int{2, 2, 2, 2}, repo.limits)
	assert.Len(t, producer.written, 5)
	assert.Len(t, repo.processed, 5)
}

func TestProcessBatch_FailedEventStaysUnprocessed(t *testing.T) {
	repo := &fakeOutboxRepo{pending: outboxEvents(2)}
	producer := &fakeProducer{writeErr: errors.New("broker not available")}
	w := NewOutboxWorker(repo, nopLogger{}, producer, &cfg.KafkaCfg{BatchSize: 10}, "")

	hasMore, err := w.processBatch(context.Background())
	require.NoError(t, err)

	assert.True(t, hasMore)
	assert.Empty(t, repo.processed)
}

func TestIsRetryableError(t *testing.T) {
	assert.True(t, isRetryableError(errors.New("dial tcp: connection refused")))
	assert.True(t, isRetryableError(errors.New("read: i/o timeout")))
	assert.False(t, isRetryableError(errors.New("message too large")))
	assert.False(t, isRetryableError(nil))
}
