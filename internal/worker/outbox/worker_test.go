package outbox

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitahub/VH-BookingService/internal/domain"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type inlineTxManager struct{}

func (inlineTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type mockOutboxRepo struct {
	pending []*domain.NotificationEvent

	sent   []string
	failed []string
}

func (m *mockOutboxRepo) ClaimPending(_ context.Context, limit int, _ int) ([]*domain.NotificationEvent, error) {
	if len(m.pending) > limit {
		return m.pending[:limit], nil
	}
	return m.pending, nil
}

func (m *mockOutboxRepo) MarkSent(_ context.Context, id string) error {
	m.sent = append(m.sent, id)
	return nil
}

func (m *mockOutboxRepo) MarkFailed(_ context.Context, id string, _ string, _ int) error {
	m.failed = append(m.failed, id)
	return nil
}

type mockNotifier struct {
	failFunctions map[string]error

	invoked []string
}

func (m *mockNotifier) Invoke(_ context.Context, function string, _ []byte) error {
	m.invoked = append(m.invoked, function)
	if err, ok := m.failFunctions[function]; ok {
		return err
	}
	return nil
}

func event(id, function string) *domain.NotificationEvent {
	return &domain.NotificationEvent{
		ID:       id,
		Function: function,
		Payload:  []byte(`{}`),
		Status:   domain.NotificationStatusPending,
	}
}

func newTestWorker(repo *mockOutboxRepo, notifier *mockNotifier) *Worker {
	return NewWorker(repo, notifier, inlineTxManager{}, 0, 10, 5, nopLogger{})
}

func TestProcessBatch_DeliversPendingEvents(t *testing.T) {
	repo := &mockOutboxRepo{pending: []*domain.NotificationEvent{
		event("a", domain.NotificationBookingCreated),
		event("b", domain.NotificationBookingConfirmed),
	}}
	notifier := &mockNotifier{}

	w := newTestWorker(repo, notifier)
	w.processBatch(context.Background())

	assert.Equal(t, []string{domain.NotificationBookingCreated, domain.NotificationBookingConfirmed}, notifier.invoked)
	assert.Equal(t, []string{"a", "b"}, repo.sent)
	assert.Empty(t, repo.failed)
}

func TestProcessBatch_FailureDoesNotStopTheBatch(t *testing.T) {
	repo := &mockOutboxRepo{pending: []*domain.NotificationEvent{
		event("a", domain.NotificationBookingCreated),
		event("b", domain.NotificationBookingConfirmed),
		event("c", domain.NotificationBookingCancelled),
	}}
	notifier := &mockNotifier{failFunctions: map[string]error{
		domain.NotificationBookingConfirmed: errors.New("gateway timeout"),
	}}

	w := newTestWorker(repo, notifier)
	w.processBatch(context.Background())

	// Упавшее событие помечается и не мешает остальным
	assert.Equal(t, []string{"a", "c"}, repo.sent)
	assert.Equal(t, []string{"b"}, repo.failed)
}

func TestProcessBatch_EmptyQueue(t *testing.T) {
	repo := &mockOutboxRepo{}
	notifier := &mockNotifier{}

	w := newTestWorker(repo, notifier)
	w.processBatch(context.Background())

	assert.Empty(t, notifier.invoked)
	assert.Empty(t, repo.sent)
}

func TestProcessBatch_RespectsBatchSize(t *testing.T) {
	repo := &mockOutboxRepo{pending: []*domain.NotificationEvent{
		event("a", domain.NotificationBookingCreated),
		event("b", domain.NotificationBookingCreated),
		event("c", domain.NotificationBookingCreated),
	}}
	notifier := &mockNotifier{}

	w := NewWorker(repo, notifier, inlineTxManager{}, 0, 2, 5, nopLogger{})
	w.processBatch(context.Background())

	require.Len(t, repo.sent, 2)
}
