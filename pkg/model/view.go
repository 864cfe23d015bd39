package model

import "time"

// ItemKind classifies an entry in the assembled display list.
type ItemKind string

const (
	ItemSnapshot ItemKind = "snapshot"
	ItemRunning  ItemKind = "running"
	ItemPending  ItemKind = "pending"
)

// ViewItem is one row of the assembled recovery-point list: either a
// completed snapshot or a running/pending activity placeholder, projected
// into a common shape for chronological interleaving.
type ViewItem struct {
	Kind ItemKind
	ID   string

	// Time is the item's effective timestamp: the snapshot time, or for
	// activities startedAt (falling back to nextRunAt). Zero when the
	// source carried no parseable timestamp; zero-time items sort oldest.
	Time time.Time

	Title         string
	WorkerSummary string
	Meta          string

	Snapshot *SnapshotRecord
	Activity *SnapshotActivity
}
