//go:build !windows

package compare

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// SofficeComparer opens the original document in LibreOffice Writer and
// walks the user through the manual compare. Writer exposes no scriptable
// per-revision rejection from the command line, so the automated filtering
// step only exists on the Word path.
type SofficeComparer struct {
	binary string
}

func newPlatformComparer() (Comparer, error) {
	for _, name := range []string{"soffice", "libreoffice"} {
		if path, err := exec.LookPath(name); err == nil {
			return &SofficeComparer{binary: path}, nil
		}
	}
	return nil, ErrUnavailable
}

func (c *SofficeComparer) Compare(ctx context.Context, original, edited, output string) error {
	fmt.Fprintln(os.Stderr, "Automatic tracked-change comparison is not available on this OS.")
	fmt.Fprintln(os.Stderr, "Opening original document in LibreOffice Writer...")
	fmt.Fprintln(os.Stderr, "In LibreOffice, go to: Edit > Track Changes > Compare Document...")
	fmt.Fprintf(os.Stderr, "Then select %s to complete the comparison and save it as %s.\n", edited, output)

	cmd := exec.Command(c.binary, "--writer", original)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to launch LibreOffice: %w", err)
	}
	// Writer keeps running after we return; do not wait on it.
	return cmd.Process.Release()
}
