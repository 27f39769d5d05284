package dataset

import (
	"context"
	"errors"
	"io"
	"sync"
	"time"

	"fundlookup/internal/logging"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Result is what a Loader resolves to, exactly once.
type Result struct {
	Dataset  *Dataset
	Err      error
	LoadID   string
	Duration time.Duration
}

// Snapshot returns the loaded dataset, or an empty one if the load failed.
func (r Result) Snapshot() *Dataset {
	if r.Err != nil || r.Dataset == nil {
		return Empty()
	}
	return r.Dataset
}

// Option configures a Loader.
type Option func(*Loader)

// WithDecodeOptions sets the CSV decoder options.
func WithDecodeOptions(opts DecodeOptions) Option {
	return func(l *Loader) { l.decode = opts }
}

// Loader fetches and decodes a Source once and publishes the Result to
// every subscriber. There is no retry: a failed load stays failed.
type Loader struct {
	source Source
	decode DecodeOptions

	startOnce sync.Once
	done      chan struct{}

	mu          sync.Mutex
	result      Result
	resolved    bool
	subscribers []func(Result)
}

// NewLoader creates a loader for src. Nothing happens until Start.
func NewLoader(src Source, opts ...Option) *Loader {
	l := &Loader{
		source: src,
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Preloaded returns a loader that has already resolved to ds.
func Preloaded(ds *Dataset) *Loader {
	l := NewLoader(nil)
	l.startOnce.Do(func() {})
	l.publish(Result{Dataset: ds, LoadID: uuid.NewString()})
	logging.Loader("using preloaded dataset: %d records", ds.Len())
	return l
}

// Start begins the fetch and decode in the background. Only the first call
// has any effect.
func (l *Loader) Start(ctx context.Context) {
	l.startOnce.Do(func() {
		go l.run(ctx)
	})
}

// Load starts the loader if needed and waits for its result.
func (l *Loader) Load(ctx context.Context) (Result, error) {
	l.Start(ctx)
	return l.Wait(ctx)
}

// Done is closed once the result is available.
func (l *Loader) Done() <-chan struct{} {
	return l.done
}

// Result returns the result and true once resolved, or false while pending.
func (l *Loader) Result() (Result, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.result, l.resolved
}

// Wait blocks until the loader resolves or ctx is done.
func (l *Loader) Wait(ctx context.Context) (Result, error) {
	select {
	case <-l.done:
		res, _ := l.Result()
		return res, nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// Subscribe registers fn to receive the result exactly once. If the loader
// has already resolved, fn runs immediately on the caller's goroutine.
func (l *Loader) Subscribe(fn func(Result)) {
	l.mu.Lock()
	if l.resolved {
		res := l.result
		l.mu.Unlock()
		fn(res)
		return
	}
	l.subscribers = append(l.subscribers, fn)
	l.mu.Unlock()
}

// Snapshot returns the dataset if loaded, or an empty dataset while the
// load is pending or after it failed.
func (l *Loader) Snapshot() *Dataset {
	res, ok := l.Result()
	if !ok {
		return Empty()
	}
	return res.Snapshot()
}

func (l *Loader) publish(res Result) {
	l.mu.Lock()
	l.result = res
	l.resolved = true
	subs := l.subscribers
	l.subscribers = nil
	close(l.done)
	l.mu.Unlock()

	for _, fn := range subs {
		fn(res)
	}
}

func (l *Loader) run(ctx context.Context) {
	loadID := uuid.NewString()
	log := logging.Get(logging.CategoryLoader).With(map[string]interface{}{
		"load_id": loadID,
		"source":  l.source.String(),
	})
	logging.LoaderDebug("dataset load %s started: %s", loadID, l.source)

	start := time.Now()
	ds, err := l.load(ctx)
	res := Result{Dataset: ds, Err: err, LoadID: loadID, Duration: time.Since(start)}

	switch {
	case err != nil:
		log.Error("dataset load failed: %v", err)
	case ds.Len() == 0:
		// Indistinguishable from a failure for the user, so make it visible here
		log.Warn("dataset loaded but has no records (columns=%v)", ds.Columns())
	default:
		log.Info("dataset loaded: %d records, %d columns in %s", ds.Len(), len(ds.Columns()), res.Duration)
	}

	l.publish(res)
}

// fetchFailure marks a read error that the fetch side already reported.
type fetchFailure struct{ err error }

func (f fetchFailure) Error() string { return f.err.Error() }
func (f fetchFailure) Unwrap() error { return f.err }

// load streams the source through the decoder: one goroutine copies the
// body into a pipe while the other decodes from it.
func (l *Loader) load(ctx context.Context) (*Dataset, error) {
	rc, err := l.source.Open(ctx)
	if err != nil {
		return nil, &LoadError{Source: l.source.String(), Op: OpFetch, Err: err}
	}

	pr, pw := io.Pipe()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer rc.Close()
		src := &ctxReader{ctx: gctx, r: rc}
		buf := make([]byte, 32*1024)
		for {
			n, rerr := src.Read(buf)
			if n > 0 {
				if _, werr := pw.Write(buf[:n]); werr != nil {
					// Decoder stopped early and reports its own error
					return nil
				}
			}
			if errors.Is(rerr, io.EOF) {
				return pw.Close()
			}
			if rerr != nil {
				pw.CloseWithError(fetchFailure{rerr})
				return &LoadError{Source: l.source.String(), Op: OpFetch, Err: rerr}
			}
		}
	})

	var ds *Dataset
	g.Go(func() error {
		d, err := Decode(pr, l.decode)
		if err != nil {
			pr.CloseWithError(err)
			var ff fetchFailure
			if errors.As(err, &ff) {
				return nil
			}
			return &LoadError{Source: l.source.String(), Op: OpDecode, Err: err}
		}
		ds = d
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return ds, nil
}

// ctxReader stops reading once ctx is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
