// Package scheduler provides the timing primitives of the application:
// an injectable clock and a keyed debouncer.
package scheduler

import (
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrDebouncerStopped is returned by Arm after Stop
var ErrDebouncerStopped = errors.New("debouncer is stopped")

// FireFunc receives the latest value armed for a key
type FireFunc[K comparable, V any] func(key K, value V)

// Debouncer coalesces bursts of values per key. Each Arm restarts the key's
// quiet period; when it elapses, fire runs once with the last armed value.
// Calls for one key never overlap, and a value is not fired after a newer
// value of the same key has been.
type Debouncer[K comparable, V any] struct {
	delay  time.Duration
	fire   FireFunc[K, V]
	clock  Clock
	logger *zap.Logger

	mu      sync.Mutex
	pending map[K]*pendingCall[V]
	running map[K]*keyState[V]
	seq     uint64
	stopped bool
	wg      sync.WaitGroup
}

type pendingCall[V any] struct {
	value V
	seq   uint64
	timer Timer
}

// keyState lives while at least one call of the key is taken off pending
// and has not returned.
type keyState[V any] struct {
	mu       sync.Mutex
	refs     int
	fired    uint64
	inflight *pendingCall[V]
}

// DebouncerOption configures a Debouncer
type DebouncerOption func(*debouncerOptions)

type debouncerOptions struct {
	clock  Clock
	logger *zap.Logger
}

// WithClock replaces the real clock
func WithClock(c Clock) DebouncerOption {
	return func(o *debouncerOptions) { o.clock = c }
}

// WithLogger sets the logger used for panics raised by fire
func WithLogger(l *zap.Logger) DebouncerOption {
	return func(o *debouncerOptions) { o.logger = l }
}

// NewDebouncer creates a debouncer that waits delay after the last Arm of a
// key before calling fire.
func NewDebouncer[K comparable, V any](delay time.Duration, fire FireFunc[K, V], opts ...DebouncerOption) *Debouncer[K, V] {
	o := debouncerOptions{clock: RealClock(), logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Debouncer[K, V]{
		delay:   delay,
		fire:    fire,
		clock:   o.clock,
		logger:  o.logger,
		pending: make(map[K]*pendingCall[V]),
		running: make(map[K]*keyState[V]),
	}
}

// Arm schedules value for key, replacing any value still pending for it.
func (d *Debouncer[K, V]) Arm(key K, value V) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return ErrDebouncerStopped
	}
	if prev, ok := d.pending[key]; ok {
		prev.timer.Stop()
	}
	d.seq++
	call := &pendingCall[V]{value: value, seq: d.seq}
	call.timer = d.clock.AfterFunc(d.delay, func() { d.expire(key, call) })
	d.pending[key] = call
	return nil
}

// Cancel drops the pending value of key. It reports whether one was pending.
func (d *Debouncer[K, V]) Cancel(key K) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	call, ok := d.pending[key]
	if !ok {
		return false
	}
	call.timer.Stop()
	delete(d.pending, key)
	return true
}

// Pending returns a copy of the values that have not finished firing: the
// armed ones and the ones whose callback is still running.
func (d *Debouncer[K, V]) Pending() map[K]V {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make(map[K]V, len(d.pending)+len(d.running))
	for k, ks := range d.running {
		if ks.inflight != nil {
			out[k] = ks.inflight.value
		}
	}
	for k, c := range d.pending {
		out[k] = c.value
	}
	return out
}

// Flush fires every pending value now, on the calling goroutine, and waits
// for callbacks already in flight. It returns the number of values fired.
func (d *Debouncer[K, V]) Flush() int {
	d.mu.Lock()
	calls := d.pending
	d.pending = make(map[K]*pendingCall[V])
	states := make(map[K]*keyState[V], len(calls))
	for k, c := range calls {
		c.timer.Stop()
		states[k] = d.take(k, c)
	}
	d.wg.Add(len(calls))
	d.mu.Unlock()

	for k, c := range calls {
		d.run(k, c, states[k])
	}
	d.wg.Wait()
	return len(calls)
}

// Stop rejects further Arm calls and flushes what is pending
func (d *Debouncer[K, V]) Stop() int {
	d.mu.Lock()
	d.stopped = true
	d.mu.Unlock()

	n := d.Flush()
	d.logger.Info("Debouncer stopped", zap.Int("flushed", n))
	return n
}

func (d *Debouncer[K, V]) expire(key K, call *pendingCall[V]) {
	d.mu.Lock()
	if d.pending[key] != call {
		// superseded by a later Arm, cancelled or flushed
		d.mu.Unlock()
		return
	}
	delete(d.pending, key)
	ks := d.take(key, call)
	d.wg.Add(1)
	d.mu.Unlock()

	d.run(key, call, ks)
}

// take moves call from pending to in flight. d.mu must be held.
func (d *Debouncer[K, V]) take(key K, call *pendingCall[V]) *keyState[V] {
	ks, ok := d.running[key]
	if !ok {
		ks = &keyState[V]{}
		d.running[key] = ks
	}
	ks.refs++
	ks.inflight = call
	return ks
}

func (d *Debouncer[K, V]) run(key K, call *pendingCall[V], ks *keyState[V]) {
	defer d.wg.Done()
	defer d.release(key, call, ks)

	ks.mu.Lock()
	defer ks.mu.Unlock()
	if call.seq < ks.fired {
		return
	}
	ks.fired = call.seq
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("Debounced callback panicked", zap.Any("panic", r))
		}
	}()
	d.fire(key, call.value)
}

func (d *Debouncer[K, V]) release(key K, call *pendingCall[V], ks *keyState[V]) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if ks.inflight == call {
		ks.inflight = nil
	}
	ks.refs--
	if ks.refs == 0 {
		delete(d.running, key)
	}
}
