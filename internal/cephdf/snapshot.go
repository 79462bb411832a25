// Package cephdf models the `ceph df` capacity report and evaluates it
// against warning and critical thresholds.
package cephdf

import (
	"encoding/json"
	"fmt"
)

// Snapshot is the parsed output of `ceph df --format json`. It is built
// fresh for every check run and never mutated afterwards.
type Snapshot struct {
	Stats ClusterStats `json:"stats"`
	Pools []Pool       `json:"pools"`
}

// ClusterStats holds the cluster-wide capacity numbers. The raw figures
// count physical capacity across all redundancy overhead; the plain figures
// count stored data.
type ClusterStats struct {
	TotalBytes        int64   `json:"total_bytes"`
	TotalUsedBytes    int64   `json:"total_used_bytes"`
	TotalAvailBytes   int64   `json:"total_avail_bytes"`
	TotalUsedRawBytes int64   `json:"total_used_raw_bytes"`
	UsedRawRatio      float64 `json:"total_used_raw_ratio"`
}

// Pool is one named logical partition of the cluster's capacity.
type Pool struct {
	Name  string    `json:"name"`
	ID    int       `json:"id"`
	Stats PoolStats `json:"stats"`
}

// PoolStats holds per-pool usage figures. PercentUsed is on a 0-100 scale.
type PoolStats struct {
	PercentUsed float64 `json:"percent_used"`
	BytesUsed   int64   `json:"bytes_used"`
	MaxAvail    int64   `json:"max_avail"`
	Objects     int64   `json:"objects"`
}

// DecodeSnapshot parses a `ceph df --format json` payload. A malformed
// payload is a retrieval failure for the caller to classify, never a panic.
func DecodeSnapshot(data []byte) (*Snapshot, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("empty ceph df output")
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse ceph df output: %w", err)
	}
	return &snap, nil
}
