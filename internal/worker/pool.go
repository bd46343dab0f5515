package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/ironsheep/color-tools-mcp/internal/colorspace"
	"github.com/ironsheep/color-tools-mcp/internal/extract"
)

// ErrClosed is returned by Submit after Close has been called.
var ErrClosed = errors.New("worker pool closed")

// Request is one extraction job.
type Request struct {
	// Key groups requests that supersede each other, such as repeated
	// extractions of the same image path. Empty keys never go stale.
	Key string

	// Buffer is owned by the pool once submitted.
	Buffer extract.PixelBuffer

	Options extract.Options
}

// Response is the outcome of one Request.
type Response struct {
	Seq    uint64                   `json:"seq"`
	Key    string                   `json:"key,omitempty"`
	Colors []colorspace.ColorResult `json:"colors"`
	Err    error                    `json:"-"`
	Stale  bool                     `json:"stale,omitempty"`
}

// Config sizes a Pool.
type Config struct {
	// Workers is the number of background goroutines. Default 1.
	Workers int `yaml:"workers"`

	// QueueSize is how many submitted jobs may wait for a worker before
	// Submit blocks. Default 4.
	QueueSize int `yaml:"queue_size"`
}

type job struct {
	seq  uint64
	req  Request
	done chan Response
}

// Pool is a fixed-size set of extraction workers. It is safe for concurrent
// use.
type Pool struct {
	logger *slog.Logger
	jobs   chan job
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool

	seqMu  sync.Mutex
	seq    uint64
	latest map[string]uint64

	extractFn func(extract.PixelBuffer, extract.Options) ([]colorspace.ColorResult, error)
}

// New starts a pool. A nil logger uses slog.Default().
func New(cfg Config, logger *slog.Logger) *Pool {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if cfg.QueueSize < 0 {
		cfg.QueueSize = 0
	}
	if logger == nil {
		logger = slog.Default()
	}

	p := &Pool{
		logger:    logger.With("component", "worker"),
		jobs:      make(chan job, cfg.QueueSize),
		latest:    make(map[string]uint64),
		extractFn: extract.Extract,
	}

	p.wg.Add(cfg.Workers)
	for i := 0; i < cfg.Workers; i++ {
		go p.run()
	}
	return p
}

// Ticket identifies a submitted request and delivers its Response.
type Ticket struct {
	Seq  uint64
	done <-chan Response
}

// Wait blocks until the response is ready or ctx is done. The job keeps
// running if ctx is cancelled; only the wait is abandoned.
func (t *Ticket) Wait(ctx context.Context) (Response, error) {
	select {
	case resp := <-t.done:
		return resp, nil
	case <-ctx.Done():
		return Response{}, ctx.Err()
	}
}

// Submit queues req and transfers ownership of req.Buffer to the pool. It
// blocks while the queue is full, until ctx is done.
func (p *Pool) Submit(ctx context.Context, req Request) (*Ticket, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return nil, ErrClosed
	}

	j := job{
		seq:  p.next(),
		req:  req,
		done: make(chan Response, 1),
	}

	select {
	case p.jobs <- j:
		p.supersede(req.Key, j.seq)
		return &Ticket{Seq: j.seq, done: j.done}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Extract submits req and waits for its response.
func (p *Pool) Extract(ctx context.Context, req Request) (Response, error) {
	t, err := p.Submit(ctx, req)
	if err != nil {
		return Response{}, err
	}
	return t.Wait(ctx)
}

// IsCurrent reports whether no newer submission for key has been queued.
// A submission that never reached the queue does not count.
func (p *Pool) IsCurrent(key string, seq uint64) bool {
	if key == "" {
		return true
	}
	p.seqMu.Lock()
	defer p.seqMu.Unlock()
	return p.latest[key] <= seq
}

// Close stops accepting work, lets queued jobs finish, and waits for the
// workers to exit. Calling Close more than once is a no-op.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()

	p.wg.Wait()
	return nil
}

func (p *Pool) next() uint64 {
	p.seqMu.Lock()
	defer p.seqMu.Unlock()
	p.seq++
	return p.seq
}

// supersede records seq as the newest queued job for key. Concurrent
// submitters may enqueue out of seq order, so latest only moves forward.
func (p *Pool) supersede(key string, seq uint64) {
	if key == "" {
		return
	}
	p.seqMu.Lock()
	defer p.seqMu.Unlock()
	if seq > p.latest[key] {
		p.latest[key] = seq
	}
}

func (p *Pool) run() {
	defer p.wg.Done()
	for j := range p.jobs {
		j.done <- p.process(j)
	}
}

func (p *Pool) process(j job) Response {
	resp := Response{Seq: j.seq, Key: j.req.Key, Colors: []colorspace.ColorResult{}}

	if !p.IsCurrent(j.req.Key, j.seq) {
		p.logger.Debug("skipping superseded extraction", "seq", j.seq, "key", j.req.Key)
		resp.Stale = true
		return resp
	}

	if j.req.Buffer.Pixels() > extract.ChunkThreshold {
		runtime.Gosched()
	}

	start := time.Now()
	colors, err := p.safeExtract(j.req)
	if err != nil {
		p.logger.Error("extraction failed", "seq", j.seq, "key", j.req.Key, "error", err)
		resp.Err = err
	} else {
		resp.Colors = colors
		p.logger.Debug("extraction finished",
			"seq", j.seq,
			"key", j.req.Key,
			"pixels", j.req.Buffer.Pixels(),
			"colors", len(colors),
			"duration", time.Since(start))
	}

	resp.Stale = !p.IsCurrent(j.req.Key, j.seq)
	return resp
}

// safeExtract converts a panic during pixel iteration into ErrProcessing.
func (p *Pool) safeExtract(req Request) (colors []colorspace.ColorResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			colors = nil
			err = fmt.Errorf("%w: %v", extract.ErrProcessing, r)
		}
	}()

	colors, err = p.extractFn(req.Buffer, req.Options)
	if err != nil && !errors.Is(err, extract.ErrProcessing) {
		err = fmt.Errorf("%w: %v", extract.ErrProcessing, err)
	}
	if colors == nil {
		colors = []colorspace.ColorResult{}
	}
	return colors, err
}
