package postgres

import (
	"testing"

	"github.com/innovadata/inventario-backend/internal/usecase"
	"github.com/stretchr/testify/assert"
)

type nopLogger struct{}

func (nopLogger) Debugf(format string, args ...any)            {}
func (nopLogger) Infof(format string, args ...any)             {}
func (nopLogger) Warnf(format string, args ...any)             {}
func (nopLogger) Errorf(err error, format string, args ...any) {}

type fakeNotifier struct {
	topics []string
}

func (n *fakeNotifier) Publish(topic string) {
	n.topics = append(n.topics, topic)
}

func TestHandleNotification_RoutesTopics(t *testing.T) {
	notifier := &fakeNotifier{}
	l := NewChangeListener("", notifier, nopLogger{})

	l.handleNotification(usecase.TopicProducts)
	l.handleNotification(usecase.TopicSales)

	assert.Equal(t, []string{"products", "sales"}, notifier.topics)
}

func TestHandleNotification_IgnoresUnknownPayload(t *testing.T) {
	notifier := &fakeNotifier{}
	l := NewChangeListener("", notifier, nopLogger{})

	l.handleNotification("categories")
	l.handleNotification("")

	assert.Empty(t, notifier.topics)
}
