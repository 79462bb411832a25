package cephdf

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	units "github.com/docker/go-units"

	"github.com/cephtools/check-ceph-df/internal/probe"
)

// Thresholds holds the warning and critical usage levels, percent scale.
// Build it with NewThresholds; the evaluation functions assume a validated
// pair.
type Thresholds struct {
	Warn     float64
	Critical float64
}

// NewThresholds validates the operator-supplied threshold pair. Both values
// are required and warn must not exceed critical. warn == critical is
// accepted: the warning band collapses and values strictly above the shared
// threshold evaluate critical.
func NewThresholds(warn, critical *float64) (Thresholds, error) {
	if warn == nil {
		return Thresholds{}, fmt.Errorf("warning threshold is required")
	}
	if critical == nil {
		return Thresholds{}, fmt.Errorf("critical threshold is required")
	}
	if *warn > *critical {
		return Thresholds{}, fmt.Errorf("warning threshold %s%% must not exceed critical threshold %s%%",
			formatPercent(*warn), formatPercent(*critical))
	}
	return Thresholds{Warn: *warn, Critical: *critical}, nil
}

// EvaluateCluster maps cluster-wide usage to a verdict. The raw usage ratio
// is converted to a percentage rounded to 2 decimal places and compared
// against the thresholds with strict greater-than on both boundaries, so a
// value exactly at a threshold stays in the lower band.
func EvaluateCluster(stats ClusterStats, th Thresholds) *probe.Result {
	rawPct := roundTo(stats.UsedRawRatio*100, 2)

	// Carried as detail data only; the decision is on rawPct alone.
	usedRawGB := float64(stats.TotalUsedRawBytes) / (1 << 30)
	usedGB := float64(stats.TotalUsedBytes) / (1 << 30)

	metrics := map[string]any{
		"raw_percent":    rawPct,
		"used_raw_gb":    usedRawGB,
		"used_gb":        usedGB,
		"used_raw_bytes": stats.TotalUsedRawBytes,
		"used_bytes":     stats.TotalUsedBytes,
		"total_bytes":    stats.TotalBytes,
		"avail_bytes":    stats.TotalAvailBytes,
	}

	switch {
	case rawPct > th.Critical:
		return &probe.Result{
			Status:  probe.StatusCritical,
			Message: fmt.Sprintf("RAW usage %.2f%% is above %s%%", rawPct, formatPercent(th.Critical)),
			Metrics: metrics,
		}
	case rawPct > th.Warn:
		return &probe.Result{
			Status:  probe.StatusWarning,
			Message: fmt.Sprintf("RAW usage %.2f%% is above %s%%", rawPct, formatPercent(th.Warn)),
			Metrics: metrics,
		}
	default:
		return &probe.Result{
			Status: probe.StatusOK,
			Message: fmt.Sprintf("RAW usage %.2f%% (%s used of %s)",
				rawPct,
				units.HumanSize(float64(stats.TotalUsedRawBytes)),
				units.HumanSize(float64(stats.TotalBytes))),
			Metrics: metrics,
		}
	}
}

// EvaluatePool maps a single pool's usage to a verdict. Pools are scanned
// in order and the first entry whose name equals poolName wins; duplicates
// later in the sequence are never consulted. The pool percentage is rounded
// to 4 decimal places before the comparison.
func EvaluatePool(poolName string, pools []Pool, th Thresholds) *probe.Result {
	for _, p := range pools {
		if p.Name != poolName {
			continue
		}
		pct := roundTo(p.Stats.PercentUsed, 4)
		pctStr := formatPercent(pct)

		metrics := map[string]any{
			"percent_used": pct,
			"bytes_used":   p.Stats.BytesUsed,
			"max_avail":    p.Stats.MaxAvail,
			"objects":      p.Stats.Objects,
		}
		data := map[string]any{"pool": p.Name}

		switch {
		case pct > th.Critical:
			return &probe.Result{
				Status:  probe.StatusCritical,
				Message: fmt.Sprintf("%s%% usage in pool '%s' is above %s%%", pctStr, p.Name, formatPercent(th.Critical)),
				Metrics: metrics,
				Data:    data,
			}
		case pct > th.Warn:
			return &probe.Result{
				Status:  probe.StatusWarning,
				Message: fmt.Sprintf("%s%% usage in pool '%s' is above %s%%", pctStr, p.Name, formatPercent(th.Warn)),
				Metrics: metrics,
				Data:    data,
			}
		default:
			return &probe.Result{
				Status:  probe.StatusOK,
				Message: fmt.Sprintf("%s%% usage in pool '%s'", pctStr, p.Name),
				Metrics: metrics,
				Data:    data,
			}
		}
	}
	return probe.Unknown("pool '%s' not found in cluster", poolName)
}

// DetailBreakdown renders a per-pool usage listing, one line per pool, for
// appending to non-OK verdicts when extended output was requested.
func DetailBreakdown(snap *Snapshot) string {
	var sb strings.Builder
	for i, p := range snap.Pools {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "pool '%s': %s%% used (%s used, %s available, %d objects)",
			p.Name,
			formatPercent(roundTo(p.Stats.PercentUsed, 4)),
			units.HumanSize(float64(p.Stats.BytesUsed)),
			units.HumanSize(float64(p.Stats.MaxAvail)),
			p.Stats.Objects)
	}
	return sb.String()
}

func roundTo(v float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(v*pow) / pow
}

// formatPercent prints a percentage without trailing zeros (62.5, not
// 62.5000).
func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
