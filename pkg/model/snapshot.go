package model

// ShortIDLength is the display prefix length for snapshot identifiers.
const ShortIDLength = 8

// SnapshotRecord is an immutable fact about a completed backup, parsed from
// the repository backend's snapshot listing. Records are recreated wholesale
// on every list reload and never mutated in place; identity is the ID string.
type SnapshotRecord struct {
	ID      string   `json:"id"`
	ShortID string   `json:"short_id,omitempty"`
	// Time is the backend-native timestamp string. It may be empty, and it
	// may lack a timezone; see attribution.ParseTimestamp.
	Time     string   `json:"time,omitempty"`
	Hostname string   `json:"hostname,omitempty"`
	Paths    []string `json:"paths,omitempty"`
	Tags     []string `json:"tags,omitempty"`

	// SizeLabel and DurationLabel are preformatted by the backend when
	// available; empty otherwise.
	SizeLabel     string `json:"size,omitempty"`
	DurationLabel string `json:"duration,omitempty"`

	Summary *SnapshotSummary `json:"summary,omitempty"`
}

// SnapshotSummary carries the backend's per-snapshot counters.
type SnapshotSummary struct {
	FilesNew            int64   `json:"files_new"`
	FilesChanged        int64   `json:"files_changed"`
	FilesUnmodified     int64   `json:"files_unmodified"`
	DataAdded           uint64  `json:"data_added"`
	TotalFilesProcessed int64   `json:"total_files_processed"`
	TotalBytesProcessed uint64  `json:"total_bytes_processed"`
	TotalDuration       float64 `json:"total_duration"`
	TreeBlobs           int64   `json:"tree_blobs"`
}

// EffectiveShortID returns the backend-reported short id when present,
// falling back to the first 8 characters of the full id.
func (s *SnapshotRecord) EffectiveShortID() string {
	if s.ShortID != "" {
		return s.ShortID
	}
	if len(s.ID) >= ShortIDLength {
		return s.ID[:ShortIDLength]
	}
	return s.ID
}
