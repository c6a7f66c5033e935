package interfaces

import "context"

// Event is what a probe observed relative to the previous one.
type Event uint8

const (
	// Reconnected: offline before, reachable now.
	Reconnected Event = iota + 1
	// Disconnected: reachable before, offline now.
	Disconnected
	// StillOnline: reachable on both probes.
	StillOnline
)

func (e Event) String() string {
	switch e {
	case Reconnected:
		return "reconnected"
	case Disconnected:
		return "disconnected"
	case StillOnline:
		return "still-online"
	}
	return "unknown"
}

type Listener func(ctx context.Context, ev Event)

type MonitorInterface interface {
	Init()
	Stop()
	IsOnline() bool
	// Probe pings the remote store once, updates the state and notifies
	// subscribers before returning.
	Probe(ctx context.Context) bool
	// Subscribe registers fn for every probe outcome except staying offline.
	Subscribe(fn Listener)
}
