package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// XeLaTeX compiles LaTeX sources with an external xelatex binary.
type XeLaTeX struct {
	Binary string
}

// Compile runs the binary in the source's directory and returns the path
// of the produced PDF next to the source.
func (x XeLaTeX) Compile(ctx context.Context, texPath string) (string, error) {
	bin := x.Binary
	if bin == "" {
		bin = "xelatex"
	}
	if _, err := exec.LookPath(bin); err != nil {
		return "", fmt.Errorf("%w: %s", ErrNoCompiler, bin)
	}

	dir := filepath.Dir(texPath)
	cmd := exec.CommandContext(ctx, bin,
		"-interaction=nonstopmode",
		"-halt-on-error",
		"-output-directory", dir,
		texPath,
	)
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("%w: %s: %s", ErrCompile, lastLines(out.String(), 5), err)
	}

	pdf := strings.TrimSuffix(texPath, filepath.Ext(texPath)) + ".pdf"
	if _, err := os.Stat(pdf); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s missing", ErrCompile, filepath.Base(pdf))
		}
		return "", fmt.Errorf("checking pdf: %w", err)
	}
	return pdf, nil
}

func lastLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, " | ")
}

// CopyFile copies src to dst, replacing dst.
func CopyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("reading %s: %w", src, err)
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	return nil
}
