package view

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/glare-project/glare/internal/attribution"
	"github.com/glare-project/glare/pkg/model"
)

func snapshotTitle(snap *model.SnapshotRecord) string {
	if len(snap.Paths) > 0 {
		return strings.Join(snap.Paths, ", ")
	}
	return snap.EffectiveShortID()
}

// snapshotMeta renders "<size>, in <duration>, ID: <shortId>", omitting
// empty fields.
func snapshotMeta(snap *model.SnapshotRecord) string {
	var parts []string

	size := snap.SizeLabel
	if size == "" && snap.Summary != nil && snap.Summary.DataAdded > 0 {
		size = humanize.IBytes(snap.Summary.DataAdded)
	}
	if size != "" {
		parts = append(parts, size)
	}
	if snap.DurationLabel != "" {
		parts = append(parts, "in "+snap.DurationLabel)
	}
	if short := snap.EffectiveShortID(); short != "" {
		parts = append(parts, "ID: "+short)
	}

	return strings.Join(parts, ", ")
}

func activityTitle(act *model.SnapshotActivity) string {
	if act.PlanName != "" {
		return act.PlanName
	}
	if act.WorkerName != "" {
		return act.WorkerName
	}
	return act.ID
}

// runningMeta is the rounded progress percentage of a running activity, by
// bytes when the total is known, else by files, else "Starting...".
func runningMeta(act *model.SnapshotActivity) string {
	switch {
	case act.TotalBytes > 0:
		return formatPercent(act.BytesDone, act.TotalBytes)
	case act.TotalFiles > 0:
		return formatPercent(act.FilesDone, act.TotalFiles)
	default:
		return "Starting..."
	}
}

func formatPercent(done, total uint64) string {
	pct := math.Round(float64(done) / float64(total) * 100)
	if pct > 100 {
		pct = 100
	}
	return fmt.Sprintf("%d%%", int(pct))
}

// pendingMeta renders the ETA to nextRunAt: "now" when due, otherwise a
// compact "Xd Yh" / "Xh Ym" / "Xm" / "Xs".
func pendingMeta(act *model.SnapshotActivity, now time.Time) string {
	next, ok := attribution.ParseTimestamp(act.NextRunAt)
	if !ok {
		return "pending"
	}
	return FormatETA(next.Sub(now))
}

// FormatETA renders a duration-until in the compact form used by the
// pending rows.
func FormatETA(d time.Duration) string {
	if d <= 0 {
		return "now"
	}
	switch {
	case d >= 24*time.Hour:
		days := int(d / (24 * time.Hour))
		hours := int(d % (24 * time.Hour) / time.Hour)
		return fmt.Sprintf("%dd %dh", days, hours)
	case d >= time.Hour:
		hours := int(d / time.Hour)
		minutes := int(d % time.Hour / time.Minute)
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case d >= time.Minute:
		return fmt.Sprintf("%dm", int(d/time.Minute))
	default:
		return fmt.Sprintf("%ds", int(d/time.Second))
	}
}
