package model

// ActivityKind classifies a live backup activity.
type ActivityKind string

const (
	ActivityRunning ActivityKind = "running"
	ActivityPending ActivityKind = "pending"
)

// SnapshotActivity is a live, mutable fact about a run that has not yet
// produced a snapshot. Activities are replaced wholesale on every update
// (no partial patching) and are superseded the moment a matching
// SnapshotRecord appears in the snapshot listing.
type SnapshotActivity struct {
	ID   string       `json:"id"`
	Kind ActivityKind `json:"kind"`

	PlanID     string `json:"planId,omitempty"`
	PlanName   string `json:"planName,omitempty"`
	WorkerID   string `json:"workerId,omitempty"`
	WorkerName string `json:"workerName,omitempty"`

	FilesDone  uint64 `json:"filesDone,omitempty"`
	TotalFiles uint64 `json:"totalFiles,omitempty"`
	BytesDone  uint64 `json:"bytesDone,omitempty"`
	TotalBytes uint64 `json:"totalBytes,omitempty"`

	Phase       string `json:"phase,omitempty"`
	CurrentPath string `json:"currentPath,omitempty"`

	StartedAt string `json:"startedAt,omitempty"`
	NextRunAt string `json:"nextRunAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

// StreamEnvelope is the message shape pushed over the live-activity stream.
// Activities is a pointer so a payload that omits the array entirely can be
// told apart from one carrying an empty list: the former is a generic
// invalidation signal, the latter a real "no activity" state.
type StreamEnvelope struct {
	Event        string              `json:"event,omitempty"` // "ready" or "tick"
	TS           int64               `json:"ts,omitempty"`
	RepositoryID string              `json:"repositoryId,omitempty"`
	Activities   *[]SnapshotActivity `json:"activities,omitempty"`
}
