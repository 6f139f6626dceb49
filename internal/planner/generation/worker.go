package generation

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

//go:generate mockgen -source=$GOFILE -destination=worker_mocks_test.go -package=generation_test

const (
	DefaultWorkerConcurrency = 2
	defaultReserveTimeout    = 5 * time.Second
	reserveErrorBackoff      = 2 * time.Second
)

type jobProcessor interface {
	Process(ctx context.Context, jobID uuid.UUID) error
}

type jobReserver interface {
	Reserve(ctx context.Context, timeout time.Duration) (uuid.UUID, error)
	Ack(ctx context.Context, jobID uuid.UUID) error
}

// Worker pulls job ids from the queue and processes them with a fixed number of goroutines.
type Worker struct {
	processor      jobProcessor
	queue          jobReserver
	concurrency    int
	reserveTimeout time.Duration
}

func NewWorker(processor jobProcessor, queue jobReserver, concurrency int) *Worker {
	if concurrency <= 0 {
		concurrency = DefaultWorkerConcurrency
	}
	return &Worker{
		processor:      processor,
		queue:          queue,
		concurrency:    concurrency,
		reserveTimeout: defaultReserveTimeout,
	}
}

// Run blocks until ctx is done and all in progress jobs have finished.
func (w *Worker) Run(ctx context.Context) error {
	log.Infof("generation worker starting with %d goroutine(s)", w.concurrency)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < w.concurrency; i++ {
		g.Go(func() error {
			w.loop(ctx, i)
			return nil
		})
	}

	err := g.Wait()
	log.Info("generation worker stopped")
	return err
}

func (w *Worker) loop(ctx context.Context, id int) {
	for ctx.Err() == nil {
		jobID, err := w.queue.Reserve(ctx, w.reserveTimeout)
		if errors.Is(err, ErrQueueEmpty) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			log.Errorf("worker %d: reserve job: %s", id, err)
			select {
			case <-ctx.Done():
				return
			case <-time.After(reserveErrorBackoff):
			}
			continue
		}

		w.handle(ctx, id, jobID)
	}
}

func (w *Worker) handle(ctx context.Context, id int, jobID uuid.UUID) {
	if err := w.processor.Process(ctx, jobID); err != nil {
		// left in the processing list, the reaper takes it from here
		log.Errorf("worker %d: process job [%s]: %s", id, jobID, err)
		return
	}

	if err := w.queue.Ack(context.WithoutCancel(ctx), jobID); err != nil {
		log.Errorf("worker %d: ack job [%s]: %s", id, jobID, err)
	}
}
