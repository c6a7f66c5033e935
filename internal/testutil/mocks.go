package testutil

import (
	"context"
	"errors"
	"sort"
	"spotter/internal/connectivity/interfaces"
	"spotter/internal/models"
	"spotter/internal/providers"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at the given level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.Logs {
		if l.Level == level {
			n++
		}
	}
	return n
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu      sync.Mutex
	Data    map[string][]byte
	Clears  int
	Deleted []string
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Del(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Deleted = append(m.Deleted, key)
	delete(m.Data, key)
}

func (m *MockCache) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Clears++
	m.Data = make(map[string][]byte)
}

// MockCompressor implements queue.CompressorInterface with injectable behavior.
type MockCompressor struct {
	CompressFn   func([]byte) ([]byte, error)
	DecompressFn func([]byte) ([]byte, error)
	Closed       bool
}

func (m *MockCompressor) Compress(val []byte) ([]byte, error) {
	if m.CompressFn != nil {
		return m.CompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Decompress(val []byte) ([]byte, error) {
	if m.DecompressFn != nil {
		return m.DecompressFn(val)
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MockCompressor) Close() { m.Closed = true }

// MockMetrics implements providers.MetricsProviderInterface.
type MockMetrics struct {
	mu         sync.Mutex
	Saved      map[string]int
	Flushes    map[string]int
	QueueSize  int
	Online     bool
	CacheHits  int
	CacheMiss  int
	FlushTimes []time.Duration
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMiss++
}
func (m *MockMetrics) IncSightingsSaved(destination string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Saved == nil {
		m.Saved = make(map[string]int)
	}
	m.Saved[destination]++
}
func (m *MockMetrics) IncFlushTotal(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Flushes == nil {
		m.Flushes = make(map[string]int)
	}
	m.Flushes[outcome]++
}
func (m *MockMetrics) ObserveFlushDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FlushTimes = append(m.FlushTimes, d)
}
func (m *MockMetrics) SetQueueSize(size int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QueueSize = size
}
func (m *MockMetrics) SetOnline(online bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Online = online
}

// MockQueue is an in-memory queue.QueueInterface.
type MockQueue struct {
	mu        sync.Mutex
	Items     []models.Sighting
	AppendErr error
	AllErr    error
	RemoveErr error
}

func (m *MockQueue) Append(s models.Sighting) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AppendErr != nil {
		return m.AppendErr
	}
	m.Items = append(m.Items, s)
	return nil
}

func (m *MockQueue) All() ([]models.Sighting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.AllErr != nil {
		return nil, m.AllErr
	}
	out := make([]models.Sighting, len(m.Items))
	copy(out, m.Items)
	return out, nil
}

func (m *MockQueue) Remove(ids []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RemoveErr != nil {
		return m.RemoveErr
	}
	drop := make(map[string]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := make([]models.Sighting, 0, len(m.Items))
	for _, s := range m.Items {
		if !drop[s.ID] {
			kept = append(kept, s)
		}
	}
	m.Items = kept
	return nil
}

func (m *MockQueue) Len() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Items), nil
}

func (m *MockQueue) Close() error { return nil }

var ErrMockRemote = errors.New("mock remote failure")

// MockRemoteStore is an in-memory remote.RemoteStoreInterface. ListByUser
// orders by timestamp descending like the real drivers.
type MockRemoteStore struct {
	mu           sync.Mutex
	Rows         []models.Sighting
	InsertErr    error
	ListErr      error
	PingErr      error
	InsertCalls  int
	BeforeInsert func()
}

func (m *MockRemoteStore) Insert(_ context.Context, sightings []models.Sighting) error {
	if m.BeforeInsert != nil {
		m.BeforeInsert()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.InsertCalls++
	if m.InsertErr != nil {
		return m.InsertErr
	}
	for _, s := range sightings {
		dup := false
		for _, r := range m.Rows {
			if r.ID == s.ID {
				dup = true
				break
			}
		}
		if !dup {
			s.Synced = true
			m.Rows = append(m.Rows, s)
		}
	}
	return nil
}

func (m *MockRemoteStore) ListByUser(_ context.Context, userID string) ([]models.Sighting, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ListErr != nil {
		return nil, m.ListErr
	}
	out := make([]models.Sighting, 0)
	for _, r := range m.Rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp > out[j].Timestamp })
	return out, nil
}

func (m *MockRemoteStore) Ping(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.PingErr
}

func (m *MockRemoteStore) Close() error { return nil }

// MockMonitor implements interfaces.MonitorInterface with a settable state.
type MockMonitor struct {
	mu        sync.Mutex
	Online    bool
	listeners []interfaces.Listener
}

func (m *MockMonitor) Init() {}
func (m *MockMonitor) Stop() {}

func (m *MockMonitor) IsOnline() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Online
}

func (m *MockMonitor) SetOnline(online bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Online = online
}

func (m *MockMonitor) Probe(_ context.Context) bool { return m.IsOnline() }

func (m *MockMonitor) Subscribe(fn interfaces.Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Notify sets the state implied by ev and runs the listeners.
func (m *MockMonitor) Notify(ctx context.Context, ev interfaces.Event) {
	m.mu.Lock()
	m.Online = ev != interfaces.Disconnected
	listeners := append([]interfaces.Listener{}, m.listeners...)
	m.mu.Unlock()
	for _, fn := range listeners {
		fn(ctx, ev)
	}
}

// Reconnect flips the state to online and reports Reconnected.
func (m *MockMonitor) Reconnect(ctx context.Context) {
	m.Notify(ctx, interfaces.Reconnected)
}
