// internal/watch/watch.go
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/infinisean/papub/internal/capture"
	"github.com/infinisean/papub/internal/check"
)

// ReportFunc receives every report produced by the watcher
type ReportFunc func(rep *check.Report) error

// Options tunes a Watcher
type Options struct {
	Debounce  time.Duration
	StateFile string // empty keeps state in memory only
}

// Watcher re-checks a host directory whenever its newest pairs change
type Watcher struct {
	runner   *check.Runner
	log      *slog.Logger
	host     string
	dir      string
	opts     Options
	onReport ReportFunc

	last Fingerprint
}

// New creates a watcher for the captures of host under root
func New(runner *check.Runner, log *slog.Logger, root, host string, opts Options, onReport ReportFunc) *Watcher {
	return &Watcher{
		runner:   runner,
		log:      log,
		host:     host,
		dir:      filepath.Join(root, host),
		opts:     opts,
		onReport: onReport,
	}
}

// Run watches the host directory until ctx is cancelled. The directory is
// checked once on start.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.loadState(); err != nil {
		return err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%w: %s", capture.ErrNoHostDir, w.dir)
		}
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}

	// Run immediately on start
	if _, err := w.Poll(); err != nil {
		return err
	}

	w.log.Info("watching for new captures", "host", w.host, "dir", w.dir, "debounce", w.opts.Debounce)

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			w.log.Info("watch stopped", "host", w.host)
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			w.log.Debug("capture changed", "file", ev.Name, "op", ev.Op.String())
			fire = time.After(w.opts.Debounce)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", "err", err)
		case <-fire:
			fire = nil
			if _, err := w.Poll(); err != nil {
				w.log.Error("check failed", "host", w.host, "err", err)
			}
		}
	}
}

// Poll resolves the current pairs and runs a check when they differ from
// the last ones reported. It returns whether a report was produced.
func (w *Watcher) Poll() (bool, error) {
	pairs, err := capture.FindPairs(w.dir, w.runner.Registry().Commands())
	if err != nil {
		return false, fmt.Errorf("find pairs for %s: %w", w.host, err)
	}

	fp := FingerprintOf(pairs)
	if w.last != nil && fp.Equal(w.last) {
		w.log.Debug("no new pairs", "host", w.host, "pairs", len(pairs))
		return false, nil
	}

	rep, err := w.runner.CheckDir(w.host, w.dir)
	if err != nil {
		return false, err
	}
	if err := w.onReport(rep); err != nil {
		return false, fmt.Errorf("report: %w", err)
	}

	w.last = fp
	if err := w.saveState(); err != nil {
		w.log.Warn("could not write watch state", "file", w.opts.StateFile, "err", err)
	}
	return true, nil
}

func (w *Watcher) loadState() error {
	if w.opts.StateFile == "" {
		return nil
	}
	st, err := ReadState(w.opts.StateFile)
	if err != nil {
		return fmt.Errorf("read state: %w", err)
	}
	if fp, ok := st.Hosts[w.host]; ok {
		w.last = fp
	}
	return nil
}

func (w *Watcher) saveState() error {
	if w.opts.StateFile == "" {
		return nil
	}
	st, err := ReadState(w.opts.StateFile)
	if err != nil {
		return err
	}
	st.Hosts[w.host] = w.last
	return WriteState(w.opts.StateFile, st)
}

// relevant keeps create, write and rename events on capture files
func relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Rename) {
		return false
	}
	ok, _ := doublestar.Match(capture.Pattern, filepath.Base(ev.Name))
	return ok
}
