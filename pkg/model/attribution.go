package model

// WorkerAttribution is a fact independently reported by worker run logs,
// claiming that one or more runs produced a snapshot. The identifiers here
// come from a different system than SnapshotRecord and routinely disagree
// with the repository's view: retention can rewrite snapshot ids, short ids
// collide, and the worker-reported time may differ in format and precision
// from the repository's.
type WorkerAttribution struct {
	SnapshotID        string   `json:"snapshotId"`
	SourceSnapshotIDs []string `json:"sourceSnapshotIds,omitempty"`
	SnapshotShortID   string   `json:"snapshotShortId,omitempty"`
	SnapshotTime      string   `json:"snapshotTime,omitempty"`

	RunGroupIDs []string `json:"runGroupIds,omitempty"`
	WorkerIDs   []string `json:"workerIds,omitempty"`
	Workers     []string `json:"workers,omitempty"`

	RunCount     int `json:"runCount"`
	SuccessCount int `json:"successCount"`
	FailureCount int `json:"failureCount"`
}

// HasWorker reports whether the attribution names the given worker id.
func (a *WorkerAttribution) HasWorker(workerID string) bool {
	for _, id := range a.WorkerIDs {
		if id == workerID {
			return true
		}
	}
	return false
}
