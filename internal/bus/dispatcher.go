package bus

import "errors"

var (
	ErrQueueFull = errors.New("dispatch queue full")
	ErrNotFound  = errors.New("key not found")
)

type job func() error

// Dispatcher runs listener notifications from a bounded FIFO run queue.
//
// Stores sharing a dispatcher form one pipeline: an ingest enqueues one
// job per subscriber, and the outermost ingest drains the queue until it
// is empty before returning. Downstream ingests triggered from inside a
// running job enqueue instead of recursing, so the call-stack depth stays
// bounded no matter how deep the service chain is, while the whole chain
// for one inbound event still completes before control returns to the
// originator. The dispatcher is not safe for concurrent use.
type Dispatcher struct {
	queue    []job
	capacity int
	draining bool
	onDepth  func(depth int)
}

// NewDispatcher creates a dispatcher with the given queue capacity.
func NewDispatcher(capacity int) *Dispatcher {
	if capacity <= 0 {
		capacity = 1024
	}
	return &Dispatcher{capacity: capacity}
}

// OnDepth installs a hook observing queue depth after each enqueue.
func (d *Dispatcher) OnDepth(hook func(depth int)) {
	d.onDepth = hook
}

func (d *Dispatcher) enqueue(j job) error {
	if len(d.queue) >= d.capacity {
		return ErrQueueFull
	}
	d.queue = append(d.queue, j)
	if d.onDepth != nil {
		d.onDepth(len(d.queue))
	}
	return nil
}

// dispatch enqueues the jobs and, unless a drain is already running
// higher up the stack, drains the queue to completion. On overflow the
// event's jobs are discarded; a nested overflow propagates through the
// running job and aborts the drain, which clears the queue itself.
func (d *Dispatcher) dispatch(jobs []job) error {
	for _, j := range jobs {
		if err := d.enqueue(j); err != nil {
			if !d.draining {
				d.queue = d.queue[:0]
			}
			return err
		}
	}
	if d.draining {
		return nil
	}
	return d.drain()
}

// drain runs queued jobs in FIFO order until the queue is empty.
// A job error aborts the drain; the remaining jobs for the failed
// event are dropped so one bad event cannot wedge the pipeline.
func (d *Dispatcher) drain() error {
	d.draining = true
	defer func() { d.draining = false }()

	for len(d.queue) > 0 {
		next := d.queue[0]
		d.queue = d.queue[1:]
		if err := next(); err != nil {
			d.queue = d.queue[:0]
			return err
		}
	}
	return nil
}
