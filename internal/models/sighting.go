package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gookit/validate"
)

type CarModel string

const (
	ThreeDoor CarModel = "three-door"
	FiveDoor  CarModel = "five-door"
)

var ErrValidation = errors.New("invalid sighting")

// Sighting is a single observation. Synced is true once the record has
// reached the remote store.
type Sighting struct {
	ID        string   `json:"id"`
	Model     CarModel `json:"model"`
	Color     string   `json:"color"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Timestamp string   `json:"timestamp"`
	UserID    string   `json:"userId,omitempty"`
	Synced    bool     `json:"synced"`
}

// NewSighting is the submission payload before an ID is assigned.
type NewSighting struct {
	Model     string   `json:"model" validate:"required|in:three-door,five-door"`
	Color     string   `json:"color" validate:"required"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
	Timestamp string   `json:"timestamp"`
	UserID    string   `json:"userId"`
}

type SaveResult struct {
	Sighting Sighting `json:"sighting"`
	NewColor bool     `json:"newColor"`
	Queued   bool     `json:"queued"`
}

func (ns *NewSighting) Validate() error {
	v := validate.Struct(ns)
	if !v.Validate() {
		return fmt.Errorf("%w: %s", ErrValidation, v.Errors.One())
	}
	if (ns.Latitude == nil) != (ns.Longitude == nil) {
		return fmt.Errorf("%w: latitude and longitude must be given together", ErrValidation)
	}
	if ns.Latitude != nil && (*ns.Latitude < -90 || *ns.Latitude > 90) {
		return fmt.Errorf("%w: latitude out of range", ErrValidation)
	}
	if ns.Longitude != nil && (*ns.Longitude < -180 || *ns.Longitude > 180) {
		return fmt.Errorf("%w: longitude out of range", ErrValidation)
	}
	return nil
}

// Build validates the payload and produces a Sighting with the given id.
// An empty timestamp becomes now; any other value must be RFC3339 and is
// normalised to UTC.
func (ns *NewSighting) Build(id string, now time.Time) (Sighting, error) {
	if err := ns.Validate(); err != nil {
		return Sighting{}, err
	}

	ts := now.UTC()
	if raw := strings.TrimSpace(ns.Timestamp); raw != "" {
		parsed, err := time.Parse(time.RFC3339Nano, raw)
		if err != nil {
			return Sighting{}, fmt.Errorf("%w: timestamp must be RFC3339", ErrValidation)
		}
		ts = parsed.UTC()
	}

	return Sighting{
		ID:        id,
		Model:     CarModel(ns.Model),
		Color:     strings.TrimSpace(ns.Color),
		Latitude:  ns.Latitude,
		Longitude: ns.Longitude,
		Timestamp: ts.Format(time.RFC3339Nano),
		UserID:    strings.TrimSpace(ns.UserID),
	}, nil
}
