package document

import (
	"bytes"
	"context"
	"runtime"

	"golang.org/x/sync/semaphore"

	"github.com/akimerslys/hltv-go/models"
)

// Parser turns raw markup into Documents on a bounded worker pool, keeping
// CPU-bound parsing off the I/O path: a slow parse occupies one worker slot
// while other fetches' network waits proceed undisturbed.
type Parser struct {
	workers *semaphore.Weighted
}

// NewParser creates a Parser with maxWorkers concurrent parse slots.
// maxWorkers <= 0 defaults to GOMAXPROCS.
func NewParser(maxWorkers int) *Parser {
	if maxWorkers <= 0 {
		maxWorkers = runtime.GOMAXPROCS(0)
	}
	return &Parser{workers: semaphore.NewWeighted(int64(maxWorkers))}
}

type parseResult struct {
	doc *Document
	err error
}

// Parse builds a Document from raw markup. It blocks until a worker slot is
// free, runs the parse in its own goroutine and awaits the result, so the
// calling goroutine only ever suspends, never computes.
func (p *Parser) Parse(ctx context.Context, markup []byte) (*Document, error) {
	if err := p.workers.Acquire(ctx, 1); err != nil {
		return nil, err
	}

	results := make(chan parseResult, 1)
	go func() {
		defer p.workers.Release(1)
		doc, err := FromReader(bytes.NewReader(markup))
		if err != nil {
			err = models.NewFetchError(models.ErrCodeParse, "building markup tree", err)
		}
		results <- parseResult{doc: doc, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-results:
		return r.doc, r.err
	}
}
