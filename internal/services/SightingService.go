package services

import (
	"context"
	"errors"
	"fmt"
	"spotter/internal/connectivity/interfaces"
	"spotter/internal/models"
	"spotter/internal/providers"
	"spotter/internal/queue"
	"spotter/internal/remote"
	"spotter/internal/structures"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrLocalStorage = errors.New("failed to save sighting to local storage")
	ErrOffline      = errors.New("remote store is offline")
	ErrRemote       = errors.New("remote store request failed")
)

const defaultFlushTimeout = 30 * time.Second

func StatsCacheKey(userID string) string {
	return "stats:" + userID
}

type SightingServiceInterface interface {
	Save(ctx context.Context, input *models.NewSighting) (*models.SaveResult, error)
	FlushQueue(ctx context.Context) (int, error)
	ListForUser(ctx context.Context, userID string) ([]models.Sighting, error)
	Stats(ctx context.Context, userID string) (models.SightingStats, error)
	QueueLen() int
	IsOnline() bool
}

// SightingService writes each sighting to exactly one place: the remote
// store while online, the offline queue otherwise. Queued sightings move
// upstream in one batch on reconnect.
type SightingService struct {
	config  *structures.Config
	logger  providers.Logger
	store   remote.RemoteStoreInterface
	queue   queue.QueueInterface
	monitor interfaces.MonitorInterface
	cache   providers.CacheProviderInterface
	metrics providers.MetricsProviderInterface

	flushMu sync.Mutex
	now     func() time.Time
	newID   func() string
}

func (ss *SightingService) Save(ctx context.Context, input *models.NewSighting) (*models.SaveResult, error) {
	sighting, err := input.Build(ss.newID(), ss.now())
	if err != nil {
		return nil, err
	}

	newColor := ss.isNewColor(ctx, sighting)

	if ss.monitor.IsOnline() {
		sighting.Synced = true
		if err := ss.store.Insert(ctx, []models.Sighting{sighting}); err != nil {
			ss.logger.Errorf(providers.TypeSync, "Error saving sighting %s remotely: %s", sighting.ID, err)
			return nil, fmt.Errorf("%w: %w", ErrRemote, err)
		}
		ss.metrics.IncSightingsSaved(providers.DestinationRemote)
		ss.invalidate(sighting.UserID)

		return &models.SaveResult{Sighting: sighting, NewColor: newColor}, nil
	}

	sighting.Synced = false
	if err := ss.queue.Append(sighting); err != nil {
		ss.logger.Errorf(providers.TypeSync, "Error queueing sighting %s: %s", sighting.ID, err)
		return nil, ErrLocalStorage
	}
	ss.metrics.IncSightingsSaved(providers.DestinationQueue)
	ss.updateQueueGauge()
	ss.invalidate(sighting.UserID)
	ss.logger.Debugf(providers.TypeSync, "Sighting %s queued while offline", sighting.ID)

	return &models.SaveResult{Sighting: sighting, NewColor: newColor, Queued: true}, nil
}

// FlushQueue sends every queued sighting in one insert and, on success,
// drops exactly those from the queue. A failed attempt leaves the queue as
// it was. A call made while another flush runs returns 0 immediately.
func (ss *SightingService) FlushQueue(ctx context.Context) (int, error) {
	if !ss.monitor.IsOnline() {
		return 0, ErrOffline
	}
	if !ss.flushMu.TryLock() {
		ss.logger.Debugf(providers.TypeSync, "Flush already in progress")
		return 0, nil
	}
	defer ss.flushMu.Unlock()

	pending, err := ss.queue.All()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrLocalStorage, err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	start := time.Now()
	batch := make([]models.Sighting, len(pending))
	ids := make([]string, len(pending))
	for i, s := range pending {
		s.Synced = true
		batch[i] = s
		ids[i] = s.ID
	}

	if err := ss.store.Insert(ctx, batch); err != nil {
		ss.metrics.IncFlushTotal(providers.FlushFailure)
		ss.logger.Errorf(providers.TypeSync, "Error flushing %d queued sightings: %s", len(batch), err)
		return 0, fmt.Errorf("%w: %w", ErrRemote, err)
	}

	if err := ss.queue.Remove(ids); err != nil {
		// Rows are upstream; the next flush resends them and the store skips duplicates.
		ss.metrics.IncFlushTotal(providers.FlushFailure)
		ss.logger.Errorf(providers.TypeSync, "Flushed %d sightings but could not trim queue: %s", len(ids), err)
		return 0, fmt.Errorf("%w: %w", ErrLocalStorage, err)
	}

	ss.metrics.IncFlushTotal(providers.FlushSuccess)
	ss.metrics.ObserveFlushDuration(time.Since(start))
	ss.updateQueueGauge()
	ss.cache.Clear()
	ss.logger.Infof(providers.TypeSync, "Flushed %d queued sightings", len(ids))

	return len(ids), nil
}

// ListForUser returns the user's queued sightings in queue order followed
// by remote ones newest first. Remote is skipped while offline.
func (ss *SightingService) ListForUser(ctx context.Context, userID string) ([]models.Sighting, error) {
	pending, err := ss.queue.All()
	if err != nil {
		ss.logger.Warnf(providers.TypeSync, "Error reading offline queue: %s", err)
		pending = nil
	}

	out := make([]models.Sighting, 0, len(pending))
	queued := make(map[string]int, len(pending))
	for _, s := range pending {
		if s.UserID == userID {
			queued[s.ID] = len(out)
			out = append(out, s)
		}
	}

	if !ss.monitor.IsOnline() {
		return out, nil
	}

	rows, err := ss.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRemote, err)
	}

	// During a flush a sighting can be upstream and still queued; keep the remote copy.
	if len(queued) > 0 {
		drop := make(map[int]struct{})
		for _, r := range rows {
			if idx, ok := queued[r.ID]; ok {
				drop[idx] = struct{}{}
			}
		}
		if len(drop) > 0 {
			kept := out[:0]
			for i, s := range out {
				if _, ok := drop[i]; !ok {
					kept = append(kept, s)
				}
			}
			out = kept
		}
	}

	return append(out, rows...), nil
}

func (ss *SightingService) Stats(ctx context.Context, userID string) (models.SightingStats, error) {
	list, err := ss.ListForUser(ctx, userID)
	if err != nil {
		return models.SightingStats{}, err
	}
	return models.CalculateStats(list), nil
}

func (ss *SightingService) QueueLen() int {
	n, err := ss.queue.Len()
	if err != nil {
		ss.logger.Warnf(providers.TypeSync, "Error reading offline queue length: %s", err)
		return 0
	}
	return n
}

func (ss *SightingService) IsOnline() bool {
	return ss.monitor.IsOnline()
}

func (ss *SightingService) isNewColor(ctx context.Context, s models.Sighting) bool {
	if s.UserID == "" {
		return false
	}
	existing, err := ss.ListForUser(ctx, s.UserID)
	if err != nil {
		ss.logger.Debugf(providers.TypeSync, "Cannot tell if color is new for %s: %s", s.UserID, err)
		return false
	}
	return models.IsNewColor(existing, s.Color)
}

func (ss *SightingService) invalidate(userID string) {
	ss.cache.Del(StatsCacheKey(userID))
}

func (ss *SightingService) updateQueueGauge() {
	ss.metrics.SetQueueSize(ss.QueueLen())
}

// onConnectivity reacts to probe outcomes. Cached stats are dropped on
// every transition since the set of visible sources changed. A reconnect
// flushes the queue, and so does a steady-online probe that finds records
// queued by a Save racing the previous flush.
func (ss *SightingService) onConnectivity(ctx context.Context, ev interfaces.Event) {
	switch ev {
	case interfaces.Reconnected, interfaces.Disconnected:
		ss.cache.Clear()
	}

	switch ev {
	case interfaces.Reconnected:
	case interfaces.StillOnline:
		if ss.QueueLen() == 0 {
			return
		}
	default:
		return
	}

	timeout := ss.config.Sync.FlushTimeout
	if timeout <= 0 {
		timeout = defaultFlushTimeout
	}
	fctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if _, err := ss.FlushQueue(fctx); err != nil {
		ss.logger.Warnf(providers.TypeSync, "Flush after %s failed: %s", ev, err)
	}
}

func NewSightingService(
	config *structures.Config,
	logger providers.Logger,
	store remote.RemoteStoreInterface,
	q queue.QueueInterface,
	monitor interfaces.MonitorInterface,
	cache providers.CacheProviderInterface,
	metrics providers.MetricsProviderInterface,
) SightingServiceInterface {
	ss := &SightingService{
		config:  config,
		logger:  logger,
		store:   store,
		queue:   q,
		monitor: monitor,
		cache:   cache,
		metrics: metrics,
		now:     time.Now,
		newID:   uuid.NewString,
	}
	monitor.Subscribe(ss.onConnectivity)
	ss.updateQueueGauge()

	return ss
}
