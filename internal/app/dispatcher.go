package app

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
)

var ErrDispatcherClosed = errors.New("dispatcher closed")

// Job обработка одного входящего сообщения
type Job = func(ctx context.Context)

// Dispatcher выполняет задачи одного пользователя строго по очереди,
// задачи разных пользователей параллельно.
type Dispatcher struct {
	mu     sync.Mutex
	queues map[int64][]Job
	closed bool
	wg     sync.WaitGroup
	ctx    context.Context
	logger *zap.Logger
}

// NewDispatcher создаёт диспетчер; ctx передаётся во все задачи
func NewDispatcher(ctx context.Context, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		queues: make(map[int64][]Job),
		ctx:    ctx,
		logger: logger,
	}
}

// Submit ставит задачу в очередь пользователя
func (d *Dispatcher) Submit(userID int64, job Job) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrDispatcherClosed
	}

	queue, running := d.queues[userID]
	d.queues[userID] = append(queue, job)
	if !running {
		d.wg.Add(1)
		go d.drain(userID)
	}
	return nil
}

// drain обрабатывает очередь пользователя пока она не опустеет
func (d *Dispatcher) drain(userID int64) {
	defer d.wg.Done()

	for {
		d.mu.Lock()
		queue := d.queues[userID]
		if len(queue) == 0 {
			delete(d.queues, userID)
			d.mu.Unlock()
			return
		}
		job := queue[0]
		d.queues[userID] = queue[1:]
		d.mu.Unlock()

		d.run(userID, job)
	}
}

func (d *Dispatcher) run(userID int64, job Job) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Job panicked",
				zap.Int64("telegram_id", userID),
				zap.Any("panic", r))
		}
	}()
	job(d.ctx)
}

// Shutdown перестаёт принимать задачи и ждёт завершения начатых
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.logger.Info("Dispatcher stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
