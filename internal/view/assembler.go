// Package view assembles the recovery-point display list: resolved
// snapshots and live activities interleaved chronologically, grouped into
// month and day buckets, with display strings denormalized onto each item.
package view

import (
	"sort"
	"strings"
	"time"

	"github.com/glare-project/glare/internal/attribution"
	"github.com/glare-project/glare/pkg/model"
)

// Options controls one assembly pass.
type Options struct {
	// WorkerID enables the worker facet: only snapshots whose resolved
	// attribution names the worker pass. Snapshots without a resolved
	// attribution are excluded while the facet is active.
	WorkerID string
	// Now anchors ETA rendering for pending activities. Zero means
	// time.Now().
	Now time.Time
}

// DayGroup is one day bucket, keyed MM/DD/YYYY.
type DayGroup struct {
	Key   string
	Items []model.ViewItem
}

// MonthGroup is one month bucket, keyed MM/YYYY.
type MonthGroup struct {
	Key  string
	Days []DayGroup
}

// Result is the assembled view.
type Result struct {
	Items  []model.ViewItem
	Groups []MonthGroup
}

// Assemble combines snapshots, their resolved attribution, and live
// activities into one descending-chronological item list plus its month/day
// grouping. Snapshot and activity lists are disjoint sources merged only for
// display ordering; a completed snapshot never doubles as an activity.
func Assemble(snapshots []model.SnapshotRecord, ix *attribution.Index, activities []model.SnapshotActivity, opts Options) Result {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	items := make([]model.ViewItem, 0, len(snapshots)+len(activities))

	for i := range snapshots {
		snap := &snapshots[i]

		var attr *model.WorkerAttribution
		if ix != nil {
			attr = ix.Resolve(snap)
		}
		if opts.WorkerID != "" {
			if attr == nil || !attr.HasWorker(opts.WorkerID) {
				continue
			}
		}

		item := model.ViewItem{
			Kind:     model.ItemSnapshot,
			ID:       snap.ID,
			Title:    snapshotTitle(snap),
			Meta:     snapshotMeta(snap),
			Snapshot: snap,
		}
		if attr != nil {
			item.WorkerSummary = strings.Join(attr.Workers, ", ")
		}
		if t, ok := attribution.ParseTimestamp(snap.Time); ok {
			item.Time = t
		}
		items = append(items, item)
	}

	for i := range activities {
		act := &activities[i]
		item := model.ViewItem{
			ID:            act.ID,
			Title:         activityTitle(act),
			WorkerSummary: act.WorkerName,
			Activity:      act,
		}
		switch act.Kind {
		case model.ActivityPending:
			item.Kind = model.ItemPending
			item.Meta = pendingMeta(act, now)
		default:
			item.Kind = model.ItemRunning
			item.Meta = runningMeta(act)
		}
		if t, ok := attribution.ParseTimestamp(act.StartedAt); ok {
			item.Time = t
		} else if t, ok := attribution.ParseTimestamp(act.NextRunAt); ok {
			item.Time = t
		}
		items = append(items, item)
	}

	// Descending by effective time; zero-time items sort as epoch zero,
	// i.e. oldest.
	sort.SliceStable(items, func(i, j int) bool {
		return effectiveMillis(items[i]) > effectiveMillis(items[j])
	})

	return Result{Items: items, Groups: groupItems(items)}
}

// ReconcileSelection keeps a selection stable across refreshes: a vanished
// id clears the selection, and an empty selection snaps to the most recent
// item when the list is non-empty.
func ReconcileSelection(current string, items []model.ViewItem) string {
	if current != "" {
		for _, item := range items {
			if item.ID == current {
				return current
			}
		}
	}
	if len(items) > 0 {
		return items[0].ID
	}
	return ""
}

func effectiveMillis(item model.ViewItem) int64 {
	if item.Time.IsZero() {
		return 0
	}
	return item.Time.UnixMilli()
}

func groupItems(items []model.ViewItem) []MonthGroup {
	var groups []MonthGroup
	monthIdx := make(map[string]int)
	dayIdx := make(map[string]int)

	for _, item := range items {
		t := item.Time
		if t.IsZero() {
			t = time.Unix(0, 0)
		}
		local := t.Local()
		monthKey := local.Format("01/2006")
		dayKey := local.Format("01/02/2006")

		mi, ok := monthIdx[monthKey]
		if !ok {
			mi = len(groups)
			monthIdx[monthKey] = mi
			groups = append(groups, MonthGroup{Key: monthKey})
		}
		di, ok := dayIdx[dayKey]
		if !ok {
			di = len(groups[mi].Days)
			dayIdx[dayKey] = di
			groups[mi].Days = append(groups[mi].Days, DayGroup{Key: dayKey})
		}
		groups[mi].Days[di].Items = append(groups[mi].Days[di].Items, item)
	}

	return groups
}
