package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/cephtools/check-ceph-df/internal/ceph"
	"github.com/cephtools/check-ceph-df/internal/cephdf"
	"github.com/cephtools/check-ceph-df/internal/history"
	"github.com/cephtools/check-ceph-df/internal/probe"
)

func runCheck(cmd *cobra.Command, args []string) {
	flags := cmd.Flags()

	if v, _ := flags.GetBool("version"); v {
		fmt.Printf("check-ceph-df version %s\n", Version)
		return
	}

	format, _ := flags.GetString("format")
	if format != "nagios" && format != "json" {
		result := probe.Unknown("unrecognized output format '%s'", format)
		fmt.Println(result.PluginLine())
		exitStatus = result.Status.ExitCode()
		return
	}

	result := check(cmd)
	outputResult(result, format)
	exitStatus = result.Status.ExitCode()
}

// check validates configuration, fetches one snapshot and evaluates it.
// Configuration problems surface as UNKNOWN before any retrieval happens.
func check(cmd *cobra.Command) *probe.Result {
	flags := cmd.Flags()

	var warn, critical *float64
	if flags.Changed("warn") {
		v, _ := flags.GetFloat64("warn")
		warn = &v
	}
	if flags.Changed("critical") {
		v, _ := flags.GetFloat64("critical")
		critical = &v
	}
	thresholds, err := cephdf.NewThresholds(warn, critical)
	if err != nil {
		return probe.Unknown("%v", err)
	}

	pool, _ := flags.GetString("pool")
	detail, _ := flags.GetBool("detail")

	exe, _ := flags.GetString("exe")
	conf, _ := flags.GetString("conf")
	monAddress, _ := flags.GetString("monaddress")
	id, _ := flags.GetString("id")
	name, _ := flags.GetString("name")
	keyring, _ := flags.GetString("keyring")
	timeout, _ := flags.GetDuration("timeout")

	client, err := ceph.NewClient(ceph.Config{
		Exe:        exe,
		Conf:       conf,
		MonAddress: monAddress,
		ID:         id,
		Name:       name,
		Keyring:    keyring,
		Timeout:    timeout,
		Detail:     detail,
	})
	if err != nil {
		return probe.Unknown("%v", err)
	}

	result := performCheck(context.Background(), client, pool, thresholds, detail)

	if histPath, _ := flags.GetString("history"); histPath != "" {
		recordHistory(histPath, result, pool)
	}
	return result
}

// performCheck fetches one snapshot and maps it to a verdict. Retrieval
// failures come back as UNKNOWN; the evaluation itself cannot fail.
func performCheck(ctx context.Context, fetcher ceph.Fetcher, pool string, th cephdf.Thresholds, detail bool) *probe.Result {
	snap, err := fetcher.Fetch(ctx)
	if err != nil {
		return probe.Unknown("%v", err)
	}

	var result *probe.Result
	if pool != "" {
		result = cephdf.EvaluatePool(pool, snap.Pools, th)
	} else {
		result = cephdf.EvaluateCluster(snap.Stats, th)
	}

	if detail && result.Status != probe.StatusOK && len(snap.Pools) > 0 {
		result.Message += "\n" + cephdf.DetailBreakdown(snap)
	}
	return result
}

// recordHistory appends the verdict to the SQLite log. The log is
// best-effort: a failure here must not change the verdict or exit status.
func recordHistory(path string, result *probe.Result, pool string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	store, err := history.Open(ctx, path)
	if err != nil {
		slog.Warn("history log unavailable", "path", path, "error", err)
		return
	}
	defer store.Close()

	if err := store.Record(ctx, result, pool); err != nil {
		slog.Warn("failed to record verdict", "path", path, "error", err)
	}
}

func outputResult(result *probe.Result, format string) {
	if format == "json" {
		json.NewEncoder(os.Stdout).Encode(result)
		return
	}
	fmt.Println(result.PluginLine())
}
