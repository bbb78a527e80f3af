package skribble

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/yacobolo/skribble/internal/render"
	"github.com/yacobolo/skribble/internal/typings"
)

// ErrNoOutput is returned by Generate when no stylesheet path is set.
var ErrNoOutput = errors.New("no css output path configured")

// Generate is the main entry point: scan, render and write.
func Generate(ctx context.Context, opts Options) (*Result, error) {
	if opts.CSSOutput == "" {
		return nil, ErrNoOutput
	}
	logger := opts.logger()

	// 1. Scan sources
	scan, err := scanProject(ctx, opts)
	if err != nil {
		return nil, err
	}

	classNames := scan.merged.ClassNames()
	result := &Result{
		ScanStats:         scan.stats,
		ClassNames:        len(classNames),
		InvalidClassNames: len(scan.merged.Issues()),
		Issues:            scan.issues,
		Warnings:          scan.warnings,
		FileErrors:        scan.failed,
	}

	// 2. Render
	result.CSS = render.CSS(scan.cfg, classNames)
	if err := render.Validate(result.CSS); err != nil {
		return nil, fmt.Errorf("rendered stylesheet: %w", err)
	}
	if opts.TypesOutput != "" {
		result.Types = typings.Generate(scan.cfg)
	}
	logger.Debug("rendered", "classNames", result.ClassNames, "bytes", len(result.CSS))

	outputs := []struct {
		path    string
		content string
	}{
		{opts.CSSOutput, result.CSS},
		{opts.TypesOutput, result.Types},
	}

	// 3. Compare or write
	for _, out := range outputs {
		if out.path == "" {
			continue
		}
		existing, err := os.ReadFile(out.path)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read %s: %w", out.path, err)
		}
		if bytes.Equal(existing, []byte(out.content)) {
			continue
		}

		if opts.Check {
			result.Stale = append(result.Stale, out.path)
			if out.path == opts.CSSOutput {
				result.Missing = missingClasses(string(existing), out.content)
			}
			continue
		}

		if err := writeFile(out.path, out.content); err != nil {
			return nil, fmt.Errorf("write failed: %w", err)
		}
		result.Written = append(result.Written, out.path)
		logger.Debug("wrote", "path", out.path)
	}

	return result, nil
}

// missingClasses lists the class names of want that have no rule in got.
func missingClasses(got, want string) []string {
	existing := render.Classes(got)
	var missing []string
	for _, class := range render.Classes(want) {
		if !slices.Contains(existing, class) {
			missing = append(missing, class)
		}
	}
	return missing
}

func writeFile(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0o644)
}
