package connectivity

import (
	"context"
	"errors"
	"spotter/internal/connectivity/interfaces"
	"spotter/internal/structures"
	"spotter/internal/testutil"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	mu    sync.Mutex
	err   error
	calls int
}

func (p *stubPinger) Ping(_ context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.calls++
	return p.err
}

func (p *stubPinger) set(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err = err
}

func (p *stubPinger) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}

func monitorConfig(forceOffline bool) *structures.Config {
	return &structures.Config{
		Sync: structures.SyncConfig{
			ProbeInterval: time.Second,
			ProbeTimeout:  100 * time.Millisecond,
			ForceOffline:  forceOffline,
		},
	}
}

func newTestMonitor(pinger *stubPinger, forceOffline bool) (*Monitor, *testutil.MockMetrics, *testutil.MockLogger) {
	metrics := &testutil.MockMetrics{}
	logger := &testutil.MockLogger{}
	m := NewMonitor(monitorConfig(forceOffline), logger, pinger, metrics).(*Monitor)
	return m, metrics, logger
}

func TestMonitor_StartsOffline(t *testing.T) {
	m, _, _ := newTestMonitor(&stubPinger{}, false)
	assert.False(t, m.IsOnline())
}

type eventLog struct {
	mu     sync.Mutex
	events []interfaces.Event
}

func (l *eventLog) listen(_ context.Context, ev interfaces.Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

func (l *eventLog) all() []interfaces.Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]interfaces.Event{}, l.events...)
}

func TestMonitor_ConnectivityTransitions(t *testing.T) {
	pinger := &stubPinger{}
	m, metrics, logger := newTestMonitor(pinger, false)

	events := &eventLog{}
	m.Subscribe(events.listen)

	assert.True(t, m.Probe(context.Background()))
	assert.True(t, m.IsOnline())
	assert.True(t, metrics.Online)
	assert.Equal(t, []interfaces.Event{interfaces.Reconnected}, events.all(), "first success counts as reconnect")

	assert.True(t, m.Probe(context.Background()))
	assert.Equal(t, interfaces.StillOnline, events.all()[1])

	pinger.set(errors.New("dial tcp: connection refused"))
	assert.False(t, m.Probe(context.Background()))
	assert.False(t, m.IsOnline())
	assert.False(t, metrics.Online)
	assert.Equal(t, 1, logger.Count("warn"))
	assert.Equal(t, interfaces.Disconnected, events.all()[2])

	assert.False(t, m.Probe(context.Background()))
	assert.Len(t, events.all(), 3, "staying offline is not reported")

	pinger.set(nil)
	assert.True(t, m.Probe(context.Background()))
	assert.Equal(t, []interfaces.Event{
		interfaces.Reconnected,
		interfaces.StillOnline,
		interfaces.Disconnected,
		interfaces.Reconnected,
	}, events.all())
}

func TestMonitor_ForceOffline(t *testing.T) {
	pinger := &stubPinger{}
	m, _, _ := newTestMonitor(pinger, true)

	events := &eventLog{}
	m.Subscribe(events.listen)

	assert.False(t, m.Probe(context.Background()))
	assert.False(t, m.IsOnline())
	assert.Empty(t, events.all())
	assert.Equal(t, 0, pinger.count())
}

func TestMonitor_PingUsesTimeout(t *testing.T) {
	m, _, _ := newTestMonitor(&stubPinger{}, false)
	m.pinger = pingerFunc(func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	})

	start := time.Now()
	assert.False(t, m.Probe(context.Background()))
	assert.Less(t, time.Since(start), 2*time.Second)
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestMonitor_InitChecksImmediately(t *testing.T) {
	pinger := &stubPinger{}
	m, _, _ := newTestMonitor(pinger, false)

	m.Init()
	defer m.Stop()

	require.Eventually(t, func() bool { return pinger.count() >= 1 }, time.Second, 10*time.Millisecond)
	assert.Eventually(t, m.IsOnline, time.Second, 10*time.Millisecond)
}

func TestMonitor_InitDoesNotWaitForReconnectWork(t *testing.T) {
	m, _, _ := newTestMonitor(&stubPinger{}, false)

	release := make(chan struct{})
	started := make(chan struct{})
	m.Subscribe(func(_ context.Context, ev interfaces.Event) {
		if ev == interfaces.Reconnected {
			close(started)
			<-release
		}
	})

	returned := make(chan struct{})
	go func() {
		m.Init()
		close(returned)
	}()

	select {
	case <-returned:
	case <-time.After(time.Second):
		t.Fatal("Init blocked on the reconnect listener")
	}

	<-started
	close(release)
	m.Stop()
}

func TestMonitor_StopWithoutInit(t *testing.T) {
	m, _, _ := newTestMonitor(&stubPinger{}, false)
	assert.NotPanics(t, m.Stop)
}
