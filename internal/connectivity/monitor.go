// Package connectivity tracks whether the remote store can be reached.
package connectivity

import (
	"context"
	"spotter/internal/connectivity/interfaces"
	"spotter/internal/providers"
	"spotter/internal/remote"
	"spotter/internal/structures"
	"sync"
	"time"

	"github.com/roylee0704/gron"
	"go.uber.org/atomic"
)

const defaultProbeTimeout = 3 * time.Second

// Monitor pings the remote store on a schedule. It starts offline, so the
// first successful probe reports Reconnected and flushes whatever an
// earlier run left in the queue.
type Monitor struct {
	config  *structures.Config
	logger  providers.Logger
	pinger  remote.Pinger
	metrics providers.MetricsProviderInterface
	cron    *gron.Cron
	online  *atomic.Bool

	probeMu   sync.Mutex
	subMu     sync.Mutex
	listeners []interfaces.Listener
}

// Init schedules the probe and runs the first one in the background.
func (m *Monitor) Init() {
	m.cron = gron.New()
	m.cron.AddFunc(gron.Every(m.config.Sync.ProbeInterval), func() {
		m.Probe(context.Background())
	})
	m.cron.Start()

	m.logger.Infof(providers.TypeSync, "Connectivity probe every %s", m.config.Sync.ProbeInterval)

	go m.Probe(context.Background())
}

func (m *Monitor) Stop() {
	if m.cron != nil {
		m.cron.Stop()
	}
}

func (m *Monitor) IsOnline() bool {
	return m.online.Load()
}

func (m *Monitor) Subscribe(fn interfaces.Listener) {
	m.subMu.Lock()
	defer m.subMu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Probe runs one ping. Listeners run synchronously before it returns;
// probes never overlap.
func (m *Monitor) Probe(ctx context.Context) bool {
	m.probeMu.Lock()
	defer m.probeMu.Unlock()

	if m.config.Sync.ForceOffline {
		was := m.online.Swap(false)
		m.metrics.SetOnline(false)
		if was {
			m.notify(ctx, interfaces.Disconnected)
		}
		return false
	}

	timeout := m.config.Sync.ProbeTimeout
	if timeout <= 0 {
		timeout = defaultProbeTimeout
	}
	pctx, cancel := context.WithTimeout(ctx, timeout)
	err := m.pinger.Ping(pctx)
	cancel()

	online := err == nil
	was := m.online.Swap(online)
	m.metrics.SetOnline(online)

	switch {
	case was && !online:
		m.logger.Warnf(providers.TypeSync, "Remote store unreachable, switching to offline queue: %s", err)
		m.notify(ctx, interfaces.Disconnected)
	case !was && online:
		m.logger.Infof(providers.TypeSync, "Remote store reachable")
		m.notify(ctx, interfaces.Reconnected)
	case online:
		m.notify(ctx, interfaces.StillOnline)
	default:
		m.logger.Debugf(providers.TypeSync, "Remote store still unreachable: %s", err)
	}

	return online
}

func (m *Monitor) notify(ctx context.Context, ev interfaces.Event) {
	m.subMu.Lock()
	listeners := append([]interfaces.Listener{}, m.listeners...)
	m.subMu.Unlock()

	for _, fn := range listeners {
		fn(ctx, ev)
	}
}

func NewMonitor(config *structures.Config, logger providers.Logger, pinger remote.Pinger, metrics providers.MetricsProviderInterface) interfaces.MonitorInterface {
	return &Monitor{
		config:  config,
		logger:  logger,
		pinger:  pinger,
		metrics: metrics,
		online:  atomic.NewBool(false),
	}
}
