package worker

import (
	"io"
	"runtime"
	"sync"
	"time"

	"github.com/KweezyCode/NoCheatPlus/oerror"
	"github.com/KweezyCode/NoCheatPlus/player/validator"
	"github.com/cespare/xxhash/v2"
	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
	"go.uber.org/atomic"
)

// queueSize is the amount of jobs each worker buffers.
const queueSize = 64

type job struct {
	report validator.MoveReport
	done   func(validator.Result)
	// disconnect is set for jobs dropping the entity of report instead of evaluating it.
	disconnect bool
}

// Pool evaluates move reports on a fixed amount of workers. Reports of one entity always go to the same
// worker, so they are evaluated in the order they were submitted.
type Pool struct {
	v   *validator.Validator
	log *logrus.Logger

	queues  []chan job
	pending atomic.Int64

	mu     deadlock.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// New starts a pool of workers evaluating with v. Zero workers starts one per CPU.
func New(v *validator.Validator, workers int, log *logrus.Logger) *Pool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	p := &Pool{v: v, log: log, queues: make([]chan job, workers)}
	for i := range p.queues {
		p.queues[i] = make(chan job, queueSize)
		p.wg.Add(1)
		go p.worker(p.queues[i])
	}
	return p
}

func (p *Pool) worker(queue chan job) {
	defer p.wg.Done()

	for j := range queue {
		p.handle(j)
		p.pending.Dec()
	}
}

func (p *Pool) handle(j job) {
	defer func() {
		if err := recover(); err != nil {
			p.log.Errorf("worker panic: %v", err)
			hub := sentry.CurrentHub().Clone()
			hub.ConfigureScope(func(scope *sentry.Scope) {
				scope.SetTag("entity", j.report.Entity.String())
			})

			hub.Recover(oerror.New("%v", err))
			hub.Flush(time.Second * 5)
		}
	}()

	if j.disconnect {
		p.v.Disconnect(j.report.Entity)
		return
	}
	res := p.v.Evaluate(j.report)
	if j.done != nil {
		j.done(res)
	}
}

func (p *Pool) queue(id uuid.UUID) chan job {
	return p.queues[xxhash.Sum64(id[:])%uint64(len(p.queues))]
}

func (p *Pool) submit(j job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return oerror.New("worker pool closed")
	}
	p.pending.Inc()
	p.queue(j.report.Entity) <- j
	return nil
}

// Submit queues r for evaluation. done, if not nil, is called with the result on the worker of the entity.
func (p *Pool) Submit(r validator.MoveReport, done func(validator.Result)) error {
	return p.submit(job{report: r, done: done})
}

// Disconnect drops the entity once every report submitted for it before was evaluated.
func (p *Pool) Disconnect(id uuid.UUID) error {
	return p.submit(job{report: validator.MoveReport{Entity: id}, disconnect: true})
}

// Pending returns the amount of jobs submitted but not yet handled.
func (p *Pool) Pending() int64 {
	return p.pending.Load()
}

// Close stops accepting jobs and waits for the queued ones to be handled.
func (p *Pool) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	for _, q := range p.queues {
		close(q)
	}
	p.mu.Unlock()
	p.wg.Wait()
}
