package queue

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/SoftGuar/Account-Management-Service/internal/core/ports"
	"github.com/SoftGuar/Account-Management-Service/internal/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	recordTimeout  = 5 * time.Second
)

type actionJob struct {
	userID int64
	action string
}

// Dispatcher records user actions off the request path. Actions are sharded by
// user id, so one user's actions are stored in the order they were raised.
// It implements ports.ActionRecorder.
type Dispatcher struct {
	workers []chan actionJob
	service ports.UserActionService
	log     zerolog.Logger
	wg      sync.WaitGroup
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.UserActionService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan actionJob, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan actionJob, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers drain their queue and stop
// when ctx is cancelled; Wait blocks until they have.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(ctx, i, ch)
	}
}

// Wait blocks until every worker has returned.
func (d *Dispatcher) Wait() { d.wg.Wait() }

// Record queues an action for the user's worker. It never blocks: when the
// worker's buffer is full the action is dropped and counted.
func (d *Dispatcher) Record(userID int64, action string) {
	idx := d.shardIndex(userID)
	select {
	case d.workers[idx] <- actionJob{userID: userID, action: action}:
		metrics.ActionsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
	default:
		metrics.ActionsRecordedTotal.WithLabelValues("dropped").Inc()
		d.log.Warn().Int64("user_id", userID).Str("action", action).Int("worker_id", idx).Msg("action queue full, dropping")
	}
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID int64) int {
	n := int64(len(d.workers))
	return int(((userID % n) + n) % n)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan actionJob) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			d.drain(id, ch)
			return
		case job := <-ch:
			d.process(context.WithoutCancel(ctx), id, job)
		}
	}
}

// drain stores whatever is already queued once shutdown starts.
func (d *Dispatcher) drain(id int, ch <-chan actionJob) {
	for {
		select {
		case job := <-ch:
			d.process(context.Background(), id, job)
		default:
			return
		}
	}
}

func (d *Dispatcher) process(ctx context.Context, id int, job actionJob) {
	metrics.ActionsQueueDepth.WithLabelValues(strconv.Itoa(id)).Dec()

	ctx, cancel := context.WithTimeout(ctx, recordTimeout)
	defer cancel()

	if _, err := d.service.Add(ctx, job.userID, job.action); err != nil {
		metrics.ActionsRecordedTotal.WithLabelValues("failed").Inc()
		d.log.Error().Err(err).
			Int64("user_id", job.userID).
			Str("action", job.action).
			Int("worker_id", id).
			Msg("action recording failed")
		return
	}
	metrics.ActionsRecordedTotal.WithLabelValues("ok").Inc()
}
