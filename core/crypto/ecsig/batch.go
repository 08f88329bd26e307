package ecsig

import (
	"context"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// BatchItem is one input of a batch conversion.
type BatchItem struct {
	Input string
	From  Format
}

// BatchResult is the outcome of one batch item. Index refers to the position
// of the item in the input slice.
type BatchResult struct {
	Index  int
	From   Format
	Output string
	Err    error
}

type batchOptions struct {
	concurrency int
}

// BatchOption configures ConvertBatch.
type BatchOption func(*batchOptions)

// WithConcurrency sets the worker pool size, default GOMAXPROCS.
func WithConcurrency(n int) BatchOption {
	return func(o *batchOptions) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// ConvertBatch converts items to the target format on a goroutine pool.
// Results keep the order of items and carry per-item errors. Items not yet
// started when ctx is done fail with the context error, which is also
// returned.
func (c *Converter) ConvertBatch(ctx context.Context, items []BatchItem, to Format, opts ...BatchOption) ([]BatchResult, error) {
	if !to.Concrete() {
		return nil, because(ErrUnknownFormat, "output format must be concrete, got %s", to)
	}

	options := &batchOptions{concurrency: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(options)
	}

	results := make([]BatchResult, len(items))
	if len(items) == 0 {
		return results, nil
	}

	pool, err := ants.NewPool(min(options.concurrency, len(items)), ants.WithPreAlloc(true))
	if err != nil {
		return nil, err
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i, item := range items {
		results[i] = BatchResult{Index: i, From: item.From}

		wg.Add(1)
		task := func() {
			defer wg.Done()
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				return
			}
			results[i].Output, results[i].From, results[i].Err = c.convertItem(item, to)
		}
		if err := pool.Submit(task); err != nil {
			wg.Done()
			results[i].Err = err
		}
	}
	wg.Wait()

	return results, ctx.Err()
}

func (c *Converter) convertItem(item BatchItem, to Format) (string, Format, error) {
	sig, from, err := c.Decode(item.Input, item.From)
	if err != nil {
		return "", from, err
	}

	out, err := Encode(sig, to)
	return out, from, err
}
