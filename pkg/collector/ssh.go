package collector

import (
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strconv"
	"strings"

	"github.com/NVIDIA/slurmdocs/pkg/defaults"
	"github.com/NVIDIA/slurmdocs/pkg/errors"
)

// SSHFetcher runs commands through the system ssh client.
type SSHFetcher struct {
	User    string
	Host    string
	Port    int
	KeyPath string

	// Binary overrides the ssh executable. Defaults to "ssh".
	Binary string
}

// Args returns the ssh argument list for command.
func (f *SSHFetcher) Args(command string) []string {
	port := f.Port
	if port == 0 {
		port = defaults.DefaultSSHPort
	}
	args := []string{"-p", strconv.Itoa(port), "-o", "BatchMode=yes"}
	if f.KeyPath != "" {
		args = append(args, "-i", f.KeyPath)
	}
	target := f.Host
	if f.User != "" {
		target = f.User + "@" + f.Host
	}
	return append(args, target, command)
}

// Fetch implements Fetcher.
func (f *SSHFetcher) Fetch(ctx context.Context, command string) (string, error) {
	if f.Host == "" {
		return "", errors.New(errors.ErrCodeInvalidRequest, "ssh fetcher has no host")
	}
	bin := f.Binary
	if bin == "" {
		bin = "ssh"
	}

	cmd := exec.CommandContext(ctx, bin, f.Args(command)...)
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	slog.Debug("running remote command", slog.String("host", f.Host), slog.String("command", command))
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", errors.Wrap(errors.ErrCodeTimeout, fmt.Sprintf("remote command %q on %s", command, f.Host), ctxErr)
		}
		return "", errors.WithContext(errors.ErrCodeUnavailable,
			fmt.Sprintf("remote command %q on %s failed: %v", command, f.Host, err),
			map[string]any{"stderr": strings.TrimSpace(stderr.String())})
	}
	return stdout.String(), nil
}
