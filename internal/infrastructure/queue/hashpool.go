package queue

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskhub/users-api/internal/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Hasher is the synchronous password hasher executed by the workers.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, storedHash string) (bool, error)
}

type hashOp string

const (
	opHash   hashOp = "hash"
	opVerify hashOp = "verify"
)

type hashJob struct {
	ctx       context.Context
	op        hashOp
	plaintext string
	stored    string
	done      chan hashResult
}

type hashResult struct {
	hash string
	ok   bool
	err  error
}

// HashPool runs bcrypt on a fixed set of workers so that at most numWorkers
// hashes are computed at once. Callers block until their job finishes or
// their context is done. It satisfies ports.PasswordHasher.
type HashPool struct {
	jobs    chan hashJob
	hasher  Hasher
	workers int
	log     zerolog.Logger
}

// NewHashPool creates a HashPool with numWorkers workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewHashPool(numWorkers int, hasher Hasher, log zerolog.Logger) *HashPool {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	return &HashPool{
		jobs:    make(chan hashJob, channelBuffer),
		hasher:  hasher,
		workers: numWorkers,
		log:     log,
	}
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (p *HashPool) Start(ctx context.Context) {
	for i := 0; i < p.workers; i++ {
		go p.runWorker(ctx, i)
	}
}

// Hash returns a salted hash of plaintext.
func (p *HashPool) Hash(ctx context.Context, plaintext string) (string, error) {
	res, err := p.submit(ctx, hashJob{op: opHash, plaintext: plaintext})
	if err != nil {
		return "", err
	}
	return res.hash, res.err
}

// Verify reports whether plaintext matches storedHash.
func (p *HashPool) Verify(ctx context.Context, plaintext, storedHash string) (bool, error) {
	res, err := p.submit(ctx, hashJob{op: opVerify, plaintext: plaintext, stored: storedHash})
	if err != nil {
		return false, err
	}
	return res.ok, res.err
}

func (p *HashPool) submit(ctx context.Context, job hashJob) (hashResult, error) {
	job.ctx = ctx
	job.done = make(chan hashResult, 1)

	select {
	case p.jobs <- job:
		metrics.HashQueueDepth.Set(float64(len(p.jobs)))
	case <-ctx.Done():
		return hashResult{}, ctx.Err()
	}

	select {
	case res := <-job.done:
		return res, nil
	case <-ctx.Done():
		return hashResult{}, ctx.Err()
	}
}

func (p *HashPool) runWorker(ctx context.Context, id int) {
	for {
		select {
		case <-ctx.Done():
			return
		case job := <-p.jobs:
			metrics.HashQueueDepth.Set(float64(len(p.jobs)))
			if err := job.ctx.Err(); err != nil {
				p.log.Debug().Err(err).Str("op", string(job.op)).Int("worker_id", id).Msg("hash job dropped, caller gone")
				job.done <- hashResult{err: err}
				continue
			}
			job.done <- p.run(job)
		}
	}
}

func (p *HashPool) run(job hashJob) hashResult {
	start := time.Now()
	defer func() {
		metrics.PasswordHashDuration.WithLabelValues(string(job.op)).Observe(time.Since(start).Seconds())
	}()

	switch job.op {
	case opVerify:
		ok, err := p.hasher.Verify(job.plaintext, job.stored)
		return hashResult{ok: ok, err: err}
	default:
		hash, err := p.hasher.Hash(job.plaintext)
		return hashResult{hash: hash, err: err}
	}
}
