package cephdf

import (
	"strings"
	"testing"
)

const samplePayload = `{
	"stats": {
		"total_bytes": 238370684928,
		"total_used_bytes": 107552571392,
		"total_avail_bytes": 130818113536,
		"total_used_raw_bytes": 107552571392,
		"total_used_raw_ratio": 0.451234
	},
	"pools": [
		{"name": "rbd", "id": 1, "stats": {"percent_used": 62.5, "bytes_used": 10737418240, "max_avail": 6442450944, "objects": 1234}},
		{"name": "images", "id": 2, "stats": {"percent_used": 5.0, "bytes_used": 1073741824, "max_avail": 20401094656, "objects": 42}}
	]
}`

func TestDecodeSnapshot(t *testing.T) {
	snap, err := DecodeSnapshot([]byte(samplePayload))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if snap.Stats.UsedRawRatio != 0.451234 {
		t.Errorf("expected used raw ratio 0.451234, got %v", snap.Stats.UsedRawRatio)
	}
	if snap.Stats.TotalBytes != 238370684928 {
		t.Errorf("expected total bytes 238370684928, got %d", snap.Stats.TotalBytes)
	}
	if len(snap.Pools) != 2 {
		t.Fatalf("expected 2 pools, got %d", len(snap.Pools))
	}
	if snap.Pools[0].Name != "rbd" || snap.Pools[0].Stats.PercentUsed != 62.5 {
		t.Errorf("unexpected first pool: %+v", snap.Pools[0])
	}
}

func TestDecodeSnapshotEmpty(t *testing.T) {
	if _, err := DecodeSnapshot(nil); err == nil {
		t.Error("expected error for empty payload")
	}
}

func TestDecodeSnapshotMalformed(t *testing.T) {
	if _, err := DecodeSnapshot([]byte("Error initializing cluster client")); err == nil {
		t.Error("expected error for non-JSON payload")
	}
}

func TestDecodeSnapshotMalformedNumeric(t *testing.T) {
	payload := `{"stats": {"total_used_raw_ratio": "not-a-number"}}`
	_, err := DecodeSnapshot([]byte(payload))
	if err == nil {
		t.Fatal("expected error for malformed numeric field")
	}
	if !strings.Contains(err.Error(), "parse ceph df output") {
		t.Errorf("expected decode error to be classified, got: %v", err)
	}
}
