package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cephtools/check-ceph-df/internal/ceph"
	"github.com/cephtools/check-ceph-df/internal/probe"
)

// Version is set at build time via -ldflags "-X github.com/cephtools/check-ceph-df/cmd.Version=..."
var Version = "dev"

var rootCmd = &cobra.Command{
	Use:   "check-ceph-df",
	Short: "Capacity check for Ceph clusters",
	Long: `check-ceph-df queries a Ceph cluster's capacity usage via 'ceph df'
and reports a tri-state verdict for a monitoring supervisor.

Exit status: 0 OK, 1 WARNING, 2 CRITICAL, 3 UNKNOWN.`,
	Args:          cobra.NoArgs,
	Run:           runCheck,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// exitStatus is set by runCheck from the verdict severity.
var exitStatus int

// Execute runs the check and returns the process exit status. Every failure
// mode, flag parsing included, maps into the severity contract.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		result := probe.Unknown("%v", err)
		fmt.Println(result.PluginLine())
		return result.Status.ExitCode()
	}
	return exitStatus
}

func init() {
	flags := rootCmd.Flags()

	flags.Float64P("warn", "W", 0, "Warning threshold, percent of usage (required)")
	flags.Float64P("critical", "C", 0, "Critical threshold, percent of usage (required)")
	flags.StringP("pool", "p", "", "Check a single pool instead of cluster-wide usage")
	flags.BoolP("detail", "d", false, "Append a per-pool breakdown to non-OK verdicts")

	flags.StringP("exe", "e", ceph.DefaultExe, "Path to the ceph executable")
	flags.StringP("conf", "c", "", "Alternative ceph conf file")
	flags.StringP("monaddress", "m", "", "Ceph monitor address[:port]")
	flags.StringP("id", "i", "", "Ceph client id for authentication")
	flags.StringP("name", "n", "", "Ceph client name for authentication")
	flags.StringP("keyring", "k", "", "Ceph client keyring file")
	flags.Duration("timeout", ceph.DefaultTimeout, "Timeout for the ceph subprocess")

	flags.String("format", "nagios", "Output format (nagios, json)")
	flags.String("history", "", "SQLite database recording each verdict (optional)")
	flags.BoolP("version", "V", false, "Print version and exit")
}
