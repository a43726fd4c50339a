package events

import "github.com/nebula4x/simcore/core"

// Level ranks event severity for UI filtering
type Level uint8

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

// String returns the display name
func (l Level) String() string {
	switch l {
	case LevelWarn:
		return "Warn"
	case LevelError:
		return "Error"
	default:
		return "Info"
	}
}

// Category groups events by the subsystem that emitted them
type Category uint8

const (
	CategoryGeneral Category = iota
	CategoryMovement
	CategoryConstruction
	CategoryResearch
	CategoryCombat
	CategoryDiplomacy
	CategoryIntel
	CategoryEconomy
	CategoryAnomaly
)

// String returns the display name
func (c Category) String() string {
	switch c {
	case CategoryMovement:
		return "Movement"
	case CategoryConstruction:
		return "Construction"
	case CategoryResearch:
		return "Research"
	case CategoryCombat:
		return "Combat"
	case CategoryDiplomacy:
		return "Diplomacy"
	case CategoryIntel:
		return "Intel"
	case CategoryEconomy:
		return "Economy"
	case CategoryAnomaly:
		return "Anomaly"
	default:
		return "General"
	}
}

// Event is one entry in the append-only simulation log. Context ids are
// zero when not applicable.
type Event struct {
	Seq        uint64    `json:"seq"`
	Day        core.Date `json:"day"`
	Hour       int       `json:"hour"`
	Level      Level     `json:"level"`
	Category   Category  `json:"category"`
	FactionId  core.Id   `json:"faction_id,omitempty"`
	FactionId2 core.Id   `json:"faction_id2,omitempty"`
	SystemId   core.Id   `json:"system_id,omitempty"`
	ShipId     core.Id   `json:"ship_id,omitempty"`
	ColonyId   core.Id   `json:"colony_id,omitempty"`
	Message    string    `json:"message"`
}

// trimSlack delays truncation so the log is not re-sliced every push
const trimSlack = 128

// Log is the chronological event stream. Entries are appended by the tick
// and read by the UI; truncation keeps the newest maxEvents entries.
type Log struct {
	Entries []Event `json:"entries"`
	NextSeq uint64  `json:"next_seq"`
}

// Push stamps the event with the next sequence number and appends it.
// When the log exceeds maxEvents by the slack margin, the oldest entries
// are dropped. maxEvents <= 0 disables truncation.
func (l *Log) Push(e Event, maxEvents int) {
	if l.NextSeq == 0 {
		l.NextSeq = 1
	}
	e.Seq = l.NextSeq
	l.NextSeq++
	l.Entries = append(l.Entries, e)
	if maxEvents > 0 && len(l.Entries) > maxEvents+trimSlack {
		keep := l.Entries[len(l.Entries)-maxEvents:]
		trimmed := make([]Event, len(keep))
		copy(trimmed, keep)
		l.Entries = trimmed
	}
}
