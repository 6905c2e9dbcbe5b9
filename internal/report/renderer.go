// internal/report/renderer.go
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/infinisean/papub/internal/check"
	"github.com/infinisean/papub/internal/compare"
)

// maxListItems bounds how many entries of a detail list are printed
const maxListItems = 10

// Renderer prints comparison output
type Renderer interface {
	Report(rep *check.Report) error
	Result(command string, res compare.Result) error
}

// New returns the renderer for format ("text" or "json")
func New(format string, w io.Writer) (Renderer, error) {
	switch strings.ToLower(format) {
	case "", "text":
		return NewTextRenderer(w), nil
	case "json":
		return NewJSONRenderer(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want text or json)", format)
	}
}

// ---------------------------------------------------------------------------
// Text Renderer
// ---------------------------------------------------------------------------

var (
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("#28a745")).Bold(true)
	styleWarning = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffc107")).Bold(true)
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("#dc3545")).Bold(true)
	styleInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("#17a2b8")).Bold(true)
	styleHeading = lipgloss.NewStyle().Bold(true).Underline(true)
	styleFaint   = lipgloss.NewStyle().Faint(true)
)

// TextRenderer prints human readable results
type TextRenderer struct {
	w io.Writer
}

func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

func (r *TextRenderer) Report(rep *check.Report) error {
	var b strings.Builder

	fmt.Fprintln(&b, styleHeading.Render("Analysis for: "+rep.Host))
	if len(rep.Outcomes) == 0 {
		fmt.Fprintln(&b, "No pre/post file pairs found.")
		_, err := io.WriteString(r.w, b.String())
		return err
	}

	s := rep.Summary
	fmt.Fprintf(&b, "%s %d   %s %d   %s %d\n\n",
		styleSuccess.Render("successful"), s.Success,
		styleWarning.Render("warnings"), s.Warning,
		styleError.Render("errors"), s.Error)

	for _, o := range rep.Outcomes {
		fmt.Fprintf(&b, "%s  %s\n", statusBadge(o.Result.Status), styleHeading.Render(o.Name))
		fmt.Fprintf(&b, "  %s\n", o.Result.Message)
		fmt.Fprintf(&b, "  %s\n", styleFaint.Render(fmt.Sprintf("pre: %s   post: %s", stamp(o.PreAt), stamp(o.PostAt))))
		if o.Stale {
			fmt.Fprintf(&b, "  %s\n", styleWarning.Render("pre-change capture is stale"))
		}
		writeResultBody(&b, o.Result)
		fmt.Fprintln(&b)
	}

	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *TextRenderer) Result(command string, res compare.Result) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", statusBadge(res.Status), styleHeading.Render(command))
	fmt.Fprintf(&b, "  %s\n", res.Message)
	writeResultBody(&b, res)
	_, err := io.WriteString(r.w, b.String())
	return err
}

func statusBadge(st compare.Status) string {
	label := strings.ToUpper(string(st))
	switch st {
	case compare.StatusSuccess:
		return styleSuccess.Render(label)
	case compare.StatusWarning:
		return styleWarning.Render(label)
	case compare.StatusError:
		return styleError.Render(label)
	default:
		return styleInfo.Render(label)
	}
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}
	return t.Format("2006-01-02 15:04:05")
}

func writeResultBody(b *strings.Builder, res compare.Result) {
	if len(res.Metrics) > 0 {
		fmt.Fprintln(b, "  metrics:")
		for _, k := range sortedKeys(res.Metrics) {
			fmt.Fprintf(b, "    %s: %s\n", title(k), formatNumber(res.Metrics[k]))
		}
	}

	var lines []string
	for _, k := range sortedKeys(res.Details) {
		lines = append(lines, detailLines(k, res.Details[k])...)
	}
	if len(lines) > 0 {
		fmt.Fprintln(b, "  details:")
		for _, l := range lines {
			fmt.Fprintln(b, l)
		}
	}
}

// detailLines renders one detail entry; empty lists and maps are omitted
func detailLines(key string, v any) []string {
	switch val := v.(type) {
	case []string:
		if len(val) == 0 {
			return nil
		}
		out := []string{fmt.Sprintf("    %s:", title(key))}
		for i, item := range val {
			if i == maxListItems {
				out = append(out, fmt.Sprintf("      ... and %d more", len(val)-maxListItems))
				break
			}
			out = append(out, "      • "+item)
		}
		return out
	case map[string]compare.Change:
		if len(val) == 0 {
			return nil
		}
		out := []string{fmt.Sprintf("    %s:", title(key))}
		for _, k := range sortedKeys(val) {
			c := val[k]
			out = append(out, fmt.Sprintf("      • %s: %d -> %d (%+d)", k, c.Pre, c.Post, c.Change))
		}
		return out
	case map[string]int:
		if len(val) == 0 {
			return nil
		}
		out := []string{fmt.Sprintf("    %s:", title(key))}
		for _, k := range sortedKeys(val) {
			out = append(out, fmt.Sprintf("      • %s: %d", k, val[k]))
		}
		return out
	case nil:
		return nil
	default:
		return []string{fmt.Sprintf("    %s: %v", title(key), val)}
	}
}

// title turns "missing_ips" into "Missing Ips"
func title(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%.1f", f)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ---------------------------------------------------------------------------
// JSON Renderer
// ---------------------------------------------------------------------------

// JSONRenderer writes one JSON document per call
type JSONRenderer struct {
	enc *json.Encoder
}

func NewJSONRenderer(w io.Writer) *JSONRenderer {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return &JSONRenderer{enc: enc}
}

func (r *JSONRenderer) Report(rep *check.Report) error {
	return r.enc.Encode(rep)
}

func (r *JSONRenderer) Result(command string, res compare.Result) error {
	return r.enc.Encode(struct {
		Command string `json:"command"`
		compare.Result
	}{command, res})
}
