// Package queue holds sightings recorded while the remote store was
// unreachable, in submission order, until a flush moves them upstream.
package queue

import (
	"fmt"
	"os"
	"path/filepath"
	"spotter/internal/models"
	"spotter/internal/providers"
	"spotter/internal/structures"
)

const (
	DriverFile = "file"
	DriverBolt = "bolt"
)

type QueueInterface interface {
	Append(s models.Sighting) error
	// All returns queued sightings in insertion order.
	All() ([]models.Sighting, error)
	// Remove drops the sightings with the given IDs and keeps the rest.
	Remove(ids []string) error
	Len() (int, error)
	Close() error
}

func NewQueue(conf *structures.Config, compressor CompressorInterface, logger providers.Logger) (QueueInterface, error) {
	if err := os.MkdirAll(filepath.Dir(conf.Queue.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create queue directory: %w", err)
	}

	switch conf.Queue.Driver {
	case DriverFile:
		logger.Infof(providers.TypeApp, "Offline queue: file %s", conf.Queue.Path)
		return NewFileQueue(conf.Queue.Path, compressor, logger), nil
	case DriverBolt:
		logger.Infof(providers.TypeApp, "Offline queue: bolt %s", conf.Queue.Path)
		compressor.Close()
		return NewBoltQueue(conf.Queue.Path, logger)
	default:
		return nil, fmt.Errorf("unknown queue driver %q", conf.Queue.Driver)
	}
}

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
