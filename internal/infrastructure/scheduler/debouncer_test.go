package scheduler

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type firedValue struct {
	key   string
	value int
}

type recorder struct {
	mu    sync.Mutex
	fired []firedValue
}

func (r *recorder) fire(key string, value int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fired = append(r.fired, firedValue{key, value})
}

func (r *recorder) values() []firedValue {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]firedValue(nil), r.fired...)
}

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestDebouncer_CoalescesBurst(t *testing.T) {
	clock := NewManualClock(epoch)
	rec := &recorder{}
	d := NewDebouncer(time.Second, rec.fire, WithClock(clock))

	require.NoError(t, d.Arm("kira", 1))
	clock.Advance(900 * time.Millisecond)
	require.NoError(t, d.Arm("kira", 2))
	clock.Advance(900 * time.Millisecond)
	require.NoError(t, d.Arm("kira", 3))

	assert.Empty(t, rec.values())
	assert.Equal(t, map[string]int{"kira": 3}, d.Pending())

	clock.Advance(time.Second)
	assert.Equal(t, []firedValue{{"kira", 3}}, rec.values())
	assert.Empty(t, d.Pending())
	assert.Zero(t, clock.Pending())
}

func TestDebouncer_KeysAreIndependent(t *testing.T) {
	clock := NewManualClock(epoch)
	rec := &recorder{}
	d := NewDebouncer(time.Second, rec.fire, WithClock(clock))

	require.NoError(t, d.Arm("kira", 10))
	clock.Advance(500 * time.Millisecond)
	require.NoError(t, d.Arm("su", 20))

	clock.Advance(500 * time.Millisecond)
	assert.Equal(t, []firedValue{{"kira", 10}}, rec.values())

	clock.Advance(500 * time.Millisecond)
	assert.Equal(t, []firedValue{{"kira", 10}, {"su", 20}}, rec.values())
}

func TestDebouncer_Cancel(t *testing.T) {
	clock := NewManualClock(epoch)
	rec := &recorder{}
	d := NewDebouncer(time.Second, rec.fire, WithClock(clock))

	require.NoError(t, d.Arm("kira", 1))
	assert.True(t, d.Cancel("kira"))
	assert.False(t, d.Cancel("kira"))

	clock.Advance(2 * time.Second)
	assert.Empty(t, rec.values())
}

func TestDebouncer_FlushAndStop(t *testing.T) {
	clock := NewManualClock(epoch)
	rec := &recorder{}
	d := NewDebouncer(time.Second, rec.fire, WithClock(clock))

	require.NoError(t, d.Arm("kira", 1))
	require.NoError(t, d.Arm("su", 2))
	assert.Equal(t, 2, d.Flush())
	assert.Len(t, rec.values(), 2)

	// flushed timers must not fire a second time
	clock.Advance(2 * time.Second)
	assert.Len(t, rec.values(), 2)

	require.NoError(t, d.Arm("elektrik", 3))
	assert.Equal(t, 1, d.Stop())
	assert.ErrorIs(t, d.Arm("elektrik", 4), ErrDebouncerStopped)
	assert.Len(t, rec.values(), 3)
}

func TestDebouncer_InFlightValueIsPending(t *testing.T) {
	clock := NewManualClock(epoch)
	var seen map[string]int
	var d *Debouncer[string, int]
	d = NewDebouncer(time.Second, func(string, int) { seen = d.Pending() }, WithClock(clock))

	require.NoError(t, d.Arm("kira", 12000))
	clock.Advance(time.Second)

	assert.Equal(t, map[string]int{"kira": 12000}, seen)
	assert.Empty(t, d.Pending())
}

func TestDebouncer_SerializesCallsPerKey(t *testing.T) {
	clock := NewManualClock(epoch)
	rec := &recorder{}
	started := make(chan struct{})
	release := make(chan struct{})
	d := NewDebouncer(time.Second, func(k string, v int) {
		if v == 1 {
			close(started)
			<-release
		}
		rec.fire(k, v)
	}, WithClock(clock))

	require.NoError(t, d.Arm("kira", 1))
	go clock.Advance(time.Second)
	<-started
	assert.Equal(t, map[string]int{"kira": 1}, d.Pending())

	require.NoError(t, d.Arm("kira", 2))
	flushed := make(chan int, 1)
	go func() { flushed <- d.Flush() }()

	assert.Never(t, func() bool { return len(rec.values()) > 0 }, 50*time.Millisecond, 5*time.Millisecond)
	close(release)

	select {
	case n := <-flushed:
		assert.Equal(t, 1, n)
	case <-time.After(2 * time.Second):
		t.Fatal("flush never returned")
	}
	assert.Equal(t, []firedValue{{"kira", 1}, {"kira", 2}}, rec.values())
	assert.Empty(t, d.Pending())
}

func TestDebouncer_SkipsValueOlderThanFired(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(time.Second, rec.fire, WithClock(NewManualClock(epoch)))

	older := &pendingCall[int]{value: 1, seq: 1}
	newer := &pendingCall[int]{value: 2, seq: 2}
	d.mu.Lock()
	oldState := d.take("kira", older)
	newState := d.take("kira", newer)
	d.wg.Add(2)
	d.mu.Unlock()

	d.run("kira", newer, newState)
	d.run("kira", older, oldState)

	assert.Equal(t, []firedValue{{"kira", 2}}, rec.values())
	assert.Empty(t, d.Pending())
	assert.Empty(t, d.running)
}

func TestDebouncer_RecoversPanics(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	clock := NewManualClock(epoch)
	d := NewDebouncer(time.Second, func(string, int) { panic("boom") },
		WithClock(clock), WithLogger(zap.New(core)))

	require.NoError(t, d.Arm("kira", 1))
	assert.NotPanics(t, func() { clock.Advance(time.Second) })
	assert.Equal(t, 1, logs.FilterMessage("Debounced callback panicked").Len())
}

func TestDebouncer_RealClock(t *testing.T) {
	done := make(chan int, 1)
	d := NewDebouncer(10*time.Millisecond, func(_ string, v int) { done <- v })

	require.NoError(t, d.Arm("kira", 7))
	select {
	case v := <-done:
		assert.Equal(t, 7, v)
	case <-time.After(2 * time.Second):
		t.Fatal("debounced value never fired")
	}
}
