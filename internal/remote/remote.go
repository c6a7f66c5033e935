// Package remote talks to the store that holds synced sightings.
package remote

import (
	"context"
	"errors"
	"fmt"
	"spotter/internal/models"
	"spotter/internal/providers"
	"spotter/internal/structures"
)

const (
	DriverRest   = "rest"
	DriverSqlite = "sqlite"
)

var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("not found")
)

// Pinger reports whether the remote store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type RemoteStoreInterface interface {
	Pinger
	// Insert stores the batch in one request. Rows whose ID already exists
	// are skipped, so resending a batch is harmless.
	Insert(ctx context.Context, sightings []models.Sighting) error
	// ListByUser returns the user's rows, newest timestamp first.
	ListByUser(ctx context.Context, userID string) ([]models.Sighting, error)
	Close() error
}

func NewRemoteStore(conf *structures.Config, logger providers.Logger) (RemoteStoreInterface, error) {
	switch conf.Remote.Driver {
	case DriverRest:
		logger.Infof(providers.TypeApp, "Remote store: rest %s", conf.Remote.URL)
		return NewRestStore(conf.Remote.URL, conf.Remote.APIKey, conf.Remote.Table, conf.Remote.Timeout), nil
	case DriverSqlite:
		logger.Infof(providers.TypeApp, "Remote store: sqlite %s table %s", conf.Remote.SqlitePath, conf.Remote.Table)
		return NewSqliteStore(conf.Remote.SqlitePath, conf.Remote.Table)
	default:
		return nil, fmt.Errorf("unknown remote driver %q", conf.Remote.Driver)
	}
}

// row is the stored shape of a sighting.
type row struct {
	ID        string   `json:"id"`
	Model     string   `json:"model"`
	Color     string   `json:"color"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Timestamp string   `json:"timestamp"`
	UserID    *string  `json:"user_id"`
	IsSynced  bool     `json:"is_synced"`
	CreatedAt string   `json:"created_at,omitempty"`
	UpdatedAt string   `json:"updated_at,omitempty"`
}

func toRow(s models.Sighting) row {
	r := row{
		ID:        s.ID,
		Model:     string(s.Model),
		Color:     s.Color,
		Latitude:  s.Latitude,
		Longitude: s.Longitude,
		Timestamp: s.Timestamp,
		IsSynced:  true,
	}
	if s.UserID != "" {
		userID := s.UserID
		r.UserID = &userID
	}
	return r
}

func (r row) sighting() models.Sighting {
	s := models.Sighting{
		ID:        r.ID,
		Model:     models.CarModel(r.Model),
		Color:     r.Color,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
		Timestamp: r.Timestamp,
		Synced:    r.IsSynced,
	}
	if r.UserID != nil {
		s.UserID = *r.UserID
	}
	return s
}
