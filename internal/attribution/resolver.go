// Package attribution reconciles two independently-sourced record streams:
// snapshot facts reported by the repository backend and attribution facts
// reported by worker run logs. The two systems disagree on identifiers under
// normal operation, so resolution degrades from certain (exact full id) to
// probable (short id plus time proximity) to none, never crashing and never
// silently pairing unrelated records outside a bounded tolerance.
package attribution

import (
	"strings"
	"time"

	"github.com/glare-project/glare/pkg/model"
)

// Config holds the matching heuristics. Both knobs are empirically tuned
// defaults rather than derived constants; keep them adjustable.
type Config struct {
	// TimeTolerance is the maximum |snapshot time - attribution time| for a
	// time-proximity match. Backup start and snapshot-recorded time commonly
	// differ by seconds to low minutes.
	TimeTolerance time.Duration
	// SingleCandidateShortcut returns a lone short-id candidate outright
	// when the snapshot carries no parseable time.
	SingleCandidateShortcut bool
}

// DefaultConfig returns the default matching configuration.
func DefaultConfig() Config {
	return Config{
		TimeTolerance:           2 * time.Minute,
		SingleCandidateShortcut: true,
	}
}

type timedEntry struct {
	attr   *model.WorkerAttribution
	unixMS int64
}

// Index holds the lookup structures over one attribution list. An Index is
// built wholesale on each attribution refresh and treated as immutable for
// the lifetime of one resolution pass; there is no incremental mutation.
type Index struct {
	cfg       Config
	attrs     []model.WorkerAttribution
	byFullID  map[string]*model.WorkerAttribution
	byShortID map[string][]*model.WorkerAttribution
	timed     []timedEntry
}

// NewIndex builds the full-id, short-id, and timed indexes over attrs.
func NewIndex(attrs []model.WorkerAttribution, cfg Config) *Index {
	if cfg.TimeTolerance <= 0 {
		cfg.TimeTolerance = DefaultConfig().TimeTolerance
	}

	ix := &Index{
		cfg:       cfg,
		attrs:     make([]model.WorkerAttribution, len(attrs)),
		byFullID:  make(map[string]*model.WorkerAttribution),
		byShortID: make(map[string][]*model.WorkerAttribution),
	}
	copy(ix.attrs, attrs)

	for i := range ix.attrs {
		attr := &ix.attrs[i]

		if key := normalizeID(attr.SnapshotID); key != "" {
			if _, exists := ix.byFullID[key]; !exists {
				ix.byFullID[key] = attr
			}
		}
		for _, alias := range attr.SourceSnapshotIDs {
			if key := normalizeID(alias); key != "" {
				if _, exists := ix.byFullID[key]; !exists {
					ix.byFullID[key] = attr
				}
			}
		}

		if key := normalizeID(attr.SnapshotShortID); key != "" {
			ix.byShortID[key] = append(ix.byShortID[key], attr)
		}

		if t, ok := ParseTimestamp(attr.SnapshotTime); ok {
			ix.timed = append(ix.timed, timedEntry{attr: attr, unixMS: t.UnixMilli()})
		}
	}

	return ix
}

// Len returns the number of indexed attributions.
func (ix *Index) Len() int {
	return len(ix.attrs)
}

// Resolve returns the best-matching attribution for snap, or nil when no
// rule produces a match. Resolution is deterministic for a given index and
// snapshot, never blocks, and never panics on malformed input.
func (ix *Index) Resolve(snap *model.SnapshotRecord) *model.WorkerAttribution {
	if snap == nil {
		return nil
	}

	// Exact full-id match is authoritative: the worker either reported the
	// repository's id directly or listed it as a pre-dedup alias.
	if attr, ok := ix.byFullID[normalizeID(snap.ID)]; ok {
		return attr
	}

	candidates := ix.byShortID[normalizeID(snap.EffectiveShortID())]

	snapTime, hasTime := ParseTimestamp(snap.Time)
	if !hasTime {
		if len(candidates) == 1 && ix.cfg.SingleCandidateShortcut {
			return candidates[0]
		}
		return firstOrNil(candidates)
	}

	pool := timedPool(candidates)
	if len(pool) == 0 {
		// None of the short-id candidates carry a parseable time; use the
		// global timed pool as a last-resort candidate set.
		pool = ix.timed
	}

	if best := nearestWithin(pool, snapTime.UnixMilli(), ix.cfg.TimeTolerance); best != nil {
		return best
	}

	// No candidate survived the tolerance window: best-effort id-only match.
	return firstOrNil(candidates)
}

func timedPool(candidates []*model.WorkerAttribution) []timedEntry {
	var pool []timedEntry
	for _, attr := range candidates {
		if t, ok := ParseTimestamp(attr.SnapshotTime); ok {
			pool = append(pool, timedEntry{attr: attr, unixMS: t.UnixMilli()})
		}
	}
	return pool
}

func nearestWithin(pool []timedEntry, targetMS int64, tolerance time.Duration) *model.WorkerAttribution {
	var best *model.WorkerAttribution
	var bestDelta int64
	for _, entry := range pool {
		delta := entry.unixMS - targetMS
		if delta < 0 {
			delta = -delta
		}
		if best == nil || delta < bestDelta {
			best = entry.attr
			bestDelta = delta
		}
	}
	if best == nil || bestDelta > tolerance.Milliseconds() {
		return nil
	}
	return best
}

func firstOrNil(candidates []*model.WorkerAttribution) *model.WorkerAttribution {
	if len(candidates) == 0 {
		return nil
	}
	return candidates[0]
}

func normalizeID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}
