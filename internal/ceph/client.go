// Package ceph retrieves capacity snapshots by invoking the ceph command
// line tool. It is the only part of the check that touches the outside
// world; everything downstream operates on the parsed snapshot.
package ceph

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/cephtools/check-ceph-df/internal/cephdf"
)

// DefaultExe is the conventional location of the ceph binary. It is a
// configuration default with explicit override, resolved once at startup.
const DefaultExe = "/usr/bin/ceph"

// DefaultTimeout bounds the ceph subprocess. A hung monitor connection must
// not hang the check past the supervisor's own timeout.
const DefaultTimeout = 30 * time.Second

// errorMarker prefixes the useful part of ceph's stderr on most failures.
const errorMarker = "ERROR: "

// Config describes how to reach the cluster.
type Config struct {
	Exe        string // path to the ceph binary
	Conf       string // ceph.conf path, optional
	MonAddress string // monitor address override, optional
	ID         string // client id for authentication, optional
	Name       string // client name for authentication, optional
	Keyring    string // keyring path, optional
	Timeout    time.Duration
	Detail     bool // request the extended `ceph df detail` report
}

// Fetcher retrieves one capacity snapshot. The check depends on this
// interface so the evaluator stays testable without a cluster.
type Fetcher interface {
	Fetch(ctx context.Context) (*cephdf.Snapshot, error)
}

// Client runs the ceph binary as a subprocess.
type Client struct {
	cfg Config
}

// NewClient validates the connection prerequisites and returns a client.
// A missing executable, conf file or keyring is a configuration error: the
// check must report UNKNOWN before any retrieval is attempted.
func NewClient(cfg Config) (*Client, error) {
	if cfg.Exe == "" {
		cfg.Exe = DefaultExe
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	if _, err := os.Stat(cfg.Exe); err != nil {
		return nil, fmt.Errorf("ceph executable '%s' doesn't exist", cfg.Exe)
	}
	if cfg.Conf != "" {
		if _, err := os.Stat(cfg.Conf); err != nil {
			return nil, fmt.Errorf("ceph conf file '%s' doesn't exist", cfg.Conf)
		}
	}
	if cfg.Keyring != "" {
		if _, err := os.Stat(cfg.Keyring); err != nil {
			return nil, fmt.Errorf("keyring file '%s' doesn't exist", cfg.Keyring)
		}
	}
	return &Client{cfg: cfg}, nil
}

// Fetch runs `ceph df --format json` and parses the result. Any failure
// comes back as an error for the caller to map to UNKNOWN.
func (c *Client) Fetch(ctx context.Context) (*cephdf.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.cfg.Exe, c.args()...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("ceph df timed out after %s", c.cfg.Timeout)
		}
		if msg := ExtractErrorMessage(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s", msg)
		}
		return nil, fmt.Errorf("ceph df failed: %w", err)
	}

	return cephdf.DecodeSnapshot(stdout.Bytes())
}

// args builds the ceph argument vector from the connection config.
func (c *Client) args() []string {
	args := []string{"df"}
	if c.cfg.Detail {
		args = append(args, "detail")
	}
	args = append(args, "--format", "json")
	if c.cfg.MonAddress != "" {
		args = append(args, "-m", c.cfg.MonAddress)
	}
	if c.cfg.Conf != "" {
		args = append(args, "-c", c.cfg.Conf)
	}
	if c.cfg.ID != "" {
		args = append(args, "--id", c.cfg.ID)
	}
	if c.cfg.Name != "" {
		args = append(args, "--name", c.cfg.Name)
	}
	if c.cfg.Keyring != "" {
		args = append(args, "--keyring", c.cfg.Keyring)
	}
	return args
}

// ExtractErrorMessage pulls the human-readable fragment out of ceph's
// stderr. Ceph prefixes the useful part with "ERROR: "; when the marker is
// absent the first line is passed through verbatim.
func ExtractErrorMessage(stderr string) string {
	stderr = strings.TrimSpace(stderr)
	if stderr == "" {
		return ""
	}
	if idx := strings.Index(stderr, errorMarker); idx >= 0 {
		msg := stderr[idx+len(errorMarker):]
		if nl := strings.IndexByte(msg, '\n'); nl >= 0 {
			msg = msg[:nl]
		}
		return strings.TrimSpace(msg)
	}
	if nl := strings.IndexByte(stderr, '\n'); nl >= 0 {
		stderr = stderr[:nl]
	}
	return stderr
}
