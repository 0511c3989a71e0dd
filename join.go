package stun

import "time"

// DefaultFallbackDelay is how long an already-loaded source waits before it
// counts as resolved. The delay lets layout settle before the join fires.
const DefaultFallbackDelay = 500 * time.Millisecond

// Loadable is a resource that becomes ready once. OnLoad listeners fire at
// most once; a listener added after the resource loaded is never called, so
// callers check Loaded first.
type Loadable interface {
	Loaded() bool
	OnLoad(fn func())
}

// ErrorNotifier is implemented by a Loadable that can also fail.
type ErrorNotifier interface {
	OnError(fn func(error))
}

// JoinOption configures WaitForAll.
type JoinOption func(*joinConfig)

type joinConfig struct {
	fallbackDelay  time.Duration
	resolveOnError bool
	timeout        time.Duration
	onTimeout      func(pending int)
}

// WithFallbackDelay overrides the delay applied to sources that are already
// loaded when the join is created. Zero still resolves on the next clock
// advance, never synchronously.
func WithFallbackDelay(d time.Duration) JoinOption {
	return func(c *joinConfig) {
		c.fallbackDelay = d
	}
}

// WithResolveOnError makes a source's error event count as resolution.
// Without it a failed source stalls the join forever.
func WithResolveOnError() JoinOption {
	return func(c *joinConfig) {
		c.resolveOnError = true
	}
}

// WithTimeout gives up on the join after d. onTimeout receives the number of
// sources still pending and runs instead of onReady, which then never fires.
func WithTimeout(d time.Duration, onTimeout func(pending int)) JoinOption {
	return func(c *joinConfig) {
		c.timeout = d
		c.onTimeout = onTimeout
	}
}

// future is a single-shot resolution handle for one join source.
type future struct {
	resolved        bool
	alreadyComplete bool
	onResolve       func()
}

func (f *future) resolve() {
	if f.resolved {
		return
	}
	f.resolved = true
	f.onResolve()
}

// Join is a counted barrier over a set of Loadable sources.
type Join struct {
	futures  []*future
	pending  int
	onReady  func()
	done     bool
	timedOut bool
	timer    Timer
}

// WaitForAll calls onReady once every source has loaded, in whatever order
// they complete. Sources that are already loaded resolve after the fallback
// delay rather than immediately. An empty source list calls onReady before
// WaitForAll returns.
func WaitForAll(clock Clock, sources []Loadable, onReady func(), opts ...JoinOption) *Join {
	cfg := joinConfig{fallbackDelay: DefaultFallbackDelay}
	for _, opt := range opts {
		opt(&cfg)
	}

	j := &Join{
		futures: make([]*future, 0, len(sources)),
		pending: len(sources),
		onReady: onReady,
	}
	if j.pending == 0 {
		j.complete()
		return j
	}

	for _, src := range sources {
		f := &future{onResolve: j.resolveOne}
		j.futures = append(j.futures, f)

		src.OnLoad(f.resolve)
		if cfg.resolveOnError {
			if en, ok := src.(ErrorNotifier); ok {
				en.OnError(func(error) { f.resolve() })
			}
		}
		if src.Loaded() || (cfg.resolveOnError && alreadyFailed(src)) {
			f.alreadyComplete = true
			clock.AfterFunc(cfg.fallbackDelay, f.resolve)
		}
	}

	if cfg.timeout > 0 && !j.done {
		j.timer = clock.AfterFunc(cfg.timeout, func() {
			if j.done {
				return
			}
			j.done = true
			j.timedOut = true
			if cfg.onTimeout != nil {
				cfg.onTimeout(j.pending)
			}
		})
	}
	return j
}

func alreadyFailed(src Loadable) bool {
	e, ok := src.(interface{ Err() error })
	return ok && e.Err() != nil
}

func (j *Join) resolveOne() {
	j.pending--
	if j.pending == 0 {
		j.complete()
	}
}

func (j *Join) complete() {
	if j.done {
		return
	}
	j.done = true
	if j.timer != nil {
		j.timer.Stop()
	}
	if j.onReady != nil {
		j.onReady()
	}
}

// Pending returns the number of sources not yet resolved.
func (j *Join) Pending() int {
	return j.pending
}

// Done reports whether the join has finished, by completion or timeout.
func (j *Join) Done() bool {
	return j.done
}

// TimedOut reports whether the join gave up before every source resolved.
func (j *Join) TimedOut() bool {
	return j.timedOut
}

// FastPathCount returns how many sources were already loaded at
// registration and took the fallback-delay path.
func (j *Join) FastPathCount() int {
	n := 0
	for _, f := range j.futures {
		if f.alreadyComplete {
			n++
		}
	}
	return n
}
