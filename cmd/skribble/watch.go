package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/yacobolo/skribble"
)

const defaultDebounce = 200 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate whenever a source or the style configuration changes",
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runWatch,
}

func init() {
	addGenerateFlags(watchCmd)
	watchCmd.Flags().Duration("debounce", defaultDebounce, "Quiet period before regenerating")
}

func runWatch(cmd *cobra.Command, _ []string) error {
	opts := buildOptions()
	opts.Check = false
	opts.Logger = newLogger()
	debounce, _ := cmd.Flags().GetDuration("debounce")

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	generateOnce(ctx, out, opts)

	w, err := newWatcher(opts)
	if err != nil {
		return err
	}
	defer w.close()

	opts.Logger.Info("watching for changes", "dirs", len(w.fsw.WatchList()))
	return w.run(ctx, debounce, func() { generateOnce(ctx, out, opts) })
}

// sourceWatcher watches every directory below the working directory and
// reports changes to files matched by the include patterns or to the style
// configuration.
type sourceWatcher struct {
	fsw     *fsnotify.Watcher
	opts    skribble.Options
	outputs map[string]bool
}

func newWatcher(opts skribble.Options) (*sourceWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: create fsnotify watcher: %w", err)
	}
	w := &sourceWatcher{fsw: fsw, opts: opts, outputs: make(map[string]bool)}
	for _, path := range []string{opts.CSSOutput, opts.TypesOutput} {
		if path != "" {
			w.outputs[filepath.Clean(path)] = true
		}
	}

	err = filepath.WalkDir(".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return err
		}
		if path != "." && skipDir(d.Name()) {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
	if err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("watch: add directories: %w", err)
	}
	return w, nil
}

func skipDir(name string) bool {
	return name == "node_modules" || name == ".git" || (len(name) > 1 && name[0] == '.')
}

// relevant reports whether a change to path should trigger a regeneration.
// The generated outputs never do.
func (w *sourceWatcher) relevant(path string) bool {
	path = filepath.Clean(path)
	if w.outputs[path] {
		return false
	}
	if w.opts.StyleConfig != "" && path == filepath.Clean(w.opts.StyleConfig) {
		return true
	}
	slashed := filepath.ToSlash(path)
	for _, pattern := range w.opts.Include {
		if ok, _ := doublestar.PathMatch(filepath.FromSlash(pattern), path); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, slashed); ok {
			return true
		}
	}
	return false
}

// run dispatches onChange once per burst of relevant events until ctx is
// cancelled.
func (w *sourceWatcher) run(ctx context.Context, debounce time.Duration, onChange func()) error {
	var (
		mu      sync.Mutex
		running sync.Mutex // one generation at a time
		timer   *time.Timer
	)
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				w.addIfDir(event.Name)
			}
			if event.Has(fsnotify.Chmod) || !w.relevant(event.Name) {
				continue
			}
			w.opts.Logger.Debug("change", "path", event.Name, "op", event.Op.String())

			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				running.Lock()
				defer running.Unlock()
				if ctx.Err() == nil {
					onChange()
				}
			})
			mu.Unlock()

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.opts.Logger.Warn("watch error", "err", err)
		}
	}
}

// addIfDir starts watching path when a new directory was created.
func (w *sourceWatcher) addIfDir(path string) {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() || skipDir(info.Name()) {
		return
	}
	if err := w.fsw.Add(path); err != nil {
		w.opts.Logger.Warn("watching new directory", "path", path, "err", err)
	}
}

func (w *sourceWatcher) close() {
	if err := w.fsw.Close(); err != nil {
		w.opts.Logger.Warn("closing watcher", "err", err)
	}
}
