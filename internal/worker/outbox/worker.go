package outbox

import (
	"context"
	"time"
)

// Worker фоновый доставщик уведомлений.
// Периодически забирает пачку событий из очереди и вызывает шлюз доставки.
// Доставка строго best effort: любая ошибка только логируется и учитывается
// в счётчике попыток события, на бронирования она не влияет
type Worker struct {
	outboxRepo  OutboxRepository
	notifier    NotifierClient
	txManager   TransactionManager
	interval    time.Duration
	batchSize   int
	maxAttempts int
	logger      Logger
}

// NewWorker создает новый экземпляр воркера
func NewWorker(
	outboxRepo OutboxRepository,
	notifier NotifierClient,
	txManager TransactionManager,
	interval time.Duration,
	batchSize int,
	maxAttempts int,
	logger Logger,
) *Worker {
	return &Worker{
		outboxRepo:  outboxRepo,
		notifier:    notifier,
		txManager:   txManager,
		interval:    interval,
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

// Run запускает цикл доставки. Блокируется до отмены контекста
func (w *Worker) Run(ctx context.Context) {
	w.logger.Info("outbox worker: started, interval=%s, batch=%d", w.interval, w.batchSize)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("outbox worker: stopped")
			return
		case <-ticker.C:
			w.processBatch(ctx)
		}
	}
}

// processBatch забирает и доставляет одну пачку событий.
// Забор и пометка выполняются в одной транзакции: FOR UPDATE SKIP LOCKED
// удерживает события пачки до конца транзакции, поэтому параллельный
// воркер возьмет только чужие события
func (w *Worker) processBatch(ctx context.Context) {
	err := w.txManager.Do(ctx, func(txCtx context.Context) error {
		events, err := w.outboxRepo.ClaimPending(txCtx, w.batchSize, w.maxAttempts)
		if err != nil {
			return err
		}

		if len(events) == 0 {
			return nil
		}

		w.logger.Info("outbox worker: claimed %d events", len(events))

		for _, event := range events {
			if err := w.notifier.Invoke(txCtx, event.Function, event.Payload); err != nil {
				w.logger.Warn("outbox worker: delivery failed: event_id=%s, function=%s, attempt=%d, error=%v",
					event.ID, event.Function, event.Attempts+1, err)

				if markErr := w.outboxRepo.MarkFailed(txCtx, event.ID, err.Error(), w.maxAttempts); markErr != nil {
					return markErr
				}
				continue
			}

			if err := w.outboxRepo.MarkSent(txCtx, event.ID); err != nil {
				return err
			}

			w.logger.Info("outbox worker: delivered event_id=%s, function=%s", event.ID, event.Function)
		}

		return nil
	})

	if err != nil {
		w.logger.Error("outbox worker: batch failed: %v", err)
	}
}
