// internal/check/runner.go
package check

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/infinisean/papub/internal/capture"
	"github.com/infinisean/papub/internal/compare"
)

// Outcome is the comparison of one command's newest pre/post pair
type Outcome struct {
	Command string         `json:"command"`
	Name    string         `json:"name"`
	Pre     string         `json:"pre_file"`
	Post    string         `json:"post_file"`
	PreAt   time.Time      `json:"pre_timestamp"`
	PostAt  time.Time      `json:"post_timestamp"`
	Stale   bool           `json:"stale"`
	Result  compare.Result `json:"result"`
}

// Report collects every outcome for one host
type Report struct {
	Host     string    `json:"host"`
	Dir      string    `json:"dir"`
	Outcomes []Outcome `json:"outcomes"`
	Summary  Summary   `json:"summary"`
}

// Summary counts outcomes per status
type Summary struct {
	Success int `json:"success"`
	Warning int `json:"warning"`
	Error   int `json:"error"`
	Info    int `json:"info"`
}

func (s *Summary) add(st compare.Status) {
	switch st {
	case compare.StatusSuccess:
		s.Success++
	case compare.StatusWarning:
		s.Warning++
	case compare.StatusError:
		s.Error++
	default:
		s.Info++
	}
}

// Total is the number of outcomes counted
func (s Summary) Total() int { return s.Success + s.Warning + s.Error + s.Info }

// Failed reports whether any outcome was an ERROR
func (s Summary) Failed() bool { return s.Error > 0 }

// Runner resolves capture pairs and dispatches them to comparators
type Runner struct {
	registry   *compare.Registry
	log        *slog.Logger
	staleAfter time.Duration
}

// New creates a runner. A zero staleAfter disables the stale pre check.
func New(registry *compare.Registry, log *slog.Logger, staleAfter time.Duration) *Runner {
	return &Runner{
		registry:   registry,
		log:        log,
		staleAfter: staleAfter,
	}
}

// Registry returns the registry the runner dispatches through
func (r *Runner) Registry() *compare.Registry { return r.registry }

// CheckHost compares the captures under root/host
func (r *Runner) CheckHost(root, host string) (*Report, error) {
	return r.CheckDir(host, filepath.Join(root, host))
}

// CheckDir compares the newest pre/post pair of every supported command in
// dir. Commands without a registered comparator are skipped.
func (r *Runner) CheckDir(host, dir string) (*Report, error) {
	pairs, err := capture.FindPairs(dir, r.registry.Commands())
	if err != nil {
		return nil, fmt.Errorf("find pairs for %s: %w", host, err)
	}

	rep := &Report{Host: host, Dir: dir, Outcomes: []Outcome{}}
	if len(pairs) == 0 {
		r.log.Warn("no pre/post pairs found", "host", host, "dir", dir)
		return rep, nil
	}

	for _, cmd := range capture.SortedCommands(pairs) {
		c, ok := r.registry.Lookup(cmd)
		if !ok {
			r.log.Debug("no comparator registered, skipping", "host", host, "command", cmd)
			continue
		}
		out := r.compare(c, pairs[cmd])
		r.log.Debug("compared", "host", host, "command", cmd, "status", out.Result.Status)
		rep.Outcomes = append(rep.Outcomes, out)
		rep.Summary.add(out.Result.Status)
	}

	if len(rep.Outcomes) == 0 {
		r.log.Warn("no comparisons could be performed", "host", host, "pairs", len(pairs))
	}
	return rep, nil
}

func (r *Runner) compare(c compare.Comparator, p capture.Pair) Outcome {
	out := Outcome{
		Command: p.Command,
		Name:    c.Name(),
		Pre:     p.Pre.Path,
		Post:    p.Post.Path,
		PreAt:   p.Pre.Timestamp,
		PostAt:  p.Post.Timestamp,
		Result:  compare.CompareFiles(c, p.Pre.Path, p.Post.Path),
	}

	if r.staleAfter > 0 && !p.Pre.Timestamp.IsZero() && !p.Post.Timestamp.IsZero() {
		if age := p.Post.Timestamp.Sub(p.Pre.Timestamp); age > r.staleAfter {
			out.Stale = true
			r.log.Warn("pre-change capture is older than the stale limit",
				"command", p.Command, "age", age, "limit", r.staleAfter)
		}
	}

	return out
}
