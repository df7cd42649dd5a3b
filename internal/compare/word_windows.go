//go:build windows

package compare

import (
	"context"
	"fmt"
	"os/exec"
)

// WordComparer drives the Microsoft Word COM automation host through a
// generated PowerShell script.
type WordComparer struct {
	shell string
}

func newPlatformComparer() (Comparer, error) {
	shell, err := exec.LookPath("powershell")
	if err != nil {
		return nil, ErrUnavailable
	}
	return &WordComparer{shell: shell}, nil
}

func (c *WordComparer) Compare(ctx context.Context, original, edited, output string) error {
	script := BuildWordScript(original, edited, output)
	cmd := exec.CommandContext(ctx, c.shell, "-NoProfile", "-NonInteractive", "-Command", script)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("word comparison failed: %w: %s", err, out)
	}
	return nil
}
