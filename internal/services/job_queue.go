package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Renal37/smm-storefront/internal/logger"
	"go.uber.org/zap"
)

var (
	ErrJobQueueIsFull = errors.New("job queue is full")
	ErrJobQueueClosed = errors.New("job queue is closed")
)

// Job - фоновая задача, выполняемая воркерами очереди.
type Job func(ctx context.Context)

// JobQueueService выполняет задачи после успешного оформления заказа
// (обновление каталога, закрытие диалога) вне обработчика запроса.
type JobQueueService struct {
	jobs    chan Job
	wg      sync.WaitGroup
	closing int32
	mu      sync.RWMutex
}

// NewJobQueueService запускает workers воркеров с очередью ёмкостью capacity.
// Воркеры останавливаются при отмене ctx или вызове Shutdown.
func NewJobQueueService(ctx context.Context, capacity, workers int) *JobQueueService {
	service := &JobQueueService{
		jobs: make(chan Job, capacity),
	}
	service.start(ctx, workers)

	return service
}

func (jqs *JobQueueService) start(ctx context.Context, workers int) {
	for i := 0; i < workers; i++ {
		jqs.wg.Add(1)

		go func(workerID int) {
			defer jqs.wg.Done()

			for {
				select {
				case job, ok := <-jqs.jobs:
					if !ok {
						return
					}
					jqs.run(ctx, workerID, job)
				case <-ctx.Done():
					return
				}
			}
		}(i + 1)
	}
}

func (jqs *JobQueueService) run(ctx context.Context, workerID int, job Job) {
	defer func() {
		if r := recover(); r != nil {
			logger.Log.Error("job panicked", zap.Int("worker", workerID), zap.Any("panic", r))
		}
	}()

	job(ctx)
}

// Enqueue ставит задачу в очередь, не блокируясь.
func (jqs *JobQueueService) Enqueue(job Job) error {
	jqs.mu.RLock()
	defer jqs.mu.RUnlock()

	if atomic.LoadInt32(&jqs.closing) == 1 {
		return ErrJobQueueClosed
	}

	select {
	case jqs.jobs <- job:
		return nil
	default:
		return ErrJobQueueIsFull
	}
}

// ScheduleJob ставит задачу в очередь через delay.
func (jqs *JobQueueService) ScheduleJob(job Job, delay time.Duration) {
	time.AfterFunc(delay, func() {
		if err := jqs.Enqueue(job); err != nil {
			logger.Log.Warn("failed to schedule job", zap.Duration("delay", delay), zap.Error(err))
		}
	})
}

// Shutdown закрывает очередь и ждёт завершения воркеров.
func (jqs *JobQueueService) Shutdown() {
	jqs.mu.Lock()
	if !atomic.CompareAndSwapInt32(&jqs.closing, 0, 1) {
		jqs.mu.Unlock()
		return
	}
	close(jqs.jobs)
	jqs.mu.Unlock()

	jqs.wg.Wait()
}
