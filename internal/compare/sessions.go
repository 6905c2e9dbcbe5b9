// internal/compare/sessions.go
package compare

import (
	"fmt"
	"strings"

	"github.com/infinisean/papub/internal/textparse"
)

const CommandSessions = "show_session_all"

var sessionHeaderWords = []string{"src zone", "dst zone", "src-zone", "dst-zone"}

// SessionEntry is one row of "show session all"
type SessionEntry struct {
	ID       string `json:"id"`
	SrcZone  string `json:"src_zone"`
	DstZone  string `json:"dst_zone"`
	Protocol string `json:"protocol"`
	SrcIP    string `json:"src_ip"`
	DstIP    string `json:"dst_ip"`
	State    string `json:"state"`
}

// SessionRecord is the parsed session table
type SessionRecord struct {
	Entries   []SessionEntry
	Total     int
	States    map[string]int
	Protocols map[string]int
	Active    int
	Closed    int
}

func (r *SessionRecord) Command() string { return CommandSessions }
func (r *SessionRecord) Len() int        { return len(r.Entries) }

func newSessionRecord() *SessionRecord {
	return &SessionRecord{
		Entries:   []SessionEntry{},
		States:    map[string]int{},
		Protocols: map[string]int{},
	}
}

func isSessionSummary(line string) bool {
	lower := strings.ToLower(line)
	return strings.Contains(lower, "total sessions") || strings.Contains(lower, "session count")
}

// ParseSessions extracts session rows from raw "show session all" output.
// Rows start with a numeric session id and carry at least six tokens.
// Total comes from the first summary line, or the row count without one.
func ParseSessions(raw string) *SessionRecord {
	rec := newSessionRecord()
	summaryFound := false

	for _, line := range textparse.Lines(raw) {
		if isSessionSummary(line) {
			if !summaryFound {
				if n, ok := textparse.MaxNumber(line); ok {
					rec.Total = n
					summaryFound = true
				}
			}
			continue
		}
		if textparse.Skip(line, sessionHeaderWords) || !textparse.HasRowID(line) {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 6 {
			continue
		}

		entry := SessionEntry{
			ID:       fields[0],
			SrcZone:  textparse.Field(fields, 1, "unknown"),
			DstZone:  textparse.Field(fields, 2, "unknown"),
			Protocol: textparse.Field(fields, 3, "unknown"),
			SrcIP:    textparse.Field(fields, 4, "unknown"),
			DstIP:    textparse.Field(fields, 5, "unknown"),
			State:    textparse.Field(fields, 6, "active"),
		}

		rec.Entries = append(rec.Entries, entry)
		rec.States[entry.State]++
		rec.Protocols[entry.Protocol]++
	}

	if rec.Total == 0 {
		rec.Total = len(rec.Entries)
	}
	rec.Active = rec.States["active"]
	rec.Closed = rec.States["closed"]

	return rec
}

// SessionComparator classifies session table growth and shrinkage
type SessionComparator struct {
	limits SessionThresholds
}

// NewSessionComparator creates a session table comparator with the given limits
func NewSessionComparator(limits SessionThresholds) *SessionComparator {
	return &SessionComparator{limits: limits}
}

func (c *SessionComparator) Command() string { return CommandSessions }
func (c *SessionComparator) Name() string    { return "Session Table" }

func (c *SessionComparator) Parse(raw string) Record { return ParseSessions(raw) }

func asSessions(r Record) *SessionRecord {
	if rec, ok := r.(*SessionRecord); ok && rec != nil {
		return rec
	}
	return newSessionRecord()
}

// Compare evaluates, in order: stable, significant drop, large increase,
// moderate change, normal.
func (c *SessionComparator) Compare(pre, post Record) Result {
	p, q := asSessions(pre), asSessions(post)

	change := q.Total - p.Total
	pct := PercentChange(p.Total, q.Total)

	metrics := map[string]float64{
		"pre_total":         float64(p.Total),
		"post_total":        float64(q.Total),
		"total_change":      float64(change),
		"percentage_change": pct,
		"pre_active":        float64(p.States["active"]),
		"post_active":       float64(q.States["active"]),
	}
	details := map[string]any{
		"state_changes":    countChanges(p.States, q.States),
		"protocol_changes": countChanges(p.Protocols, q.Protocols),
		"pre_states":       copyCounts(p.States),
		"post_states":      copyCounts(q.States),
	}

	var (
		status Status
		msg    string
	)
	switch {
	case abs(pct) <= c.limits.StablePct:
		status = StatusSuccess
		msg = fmt.Sprintf("Session count stable (%d sessions, %+d)", q.Total, change)
	case pct < -c.limits.DropErrorPct:
		status = StatusError
		msg = fmt.Sprintf("Significant session drop (%d sessions, %.1f%% decrease)", q.Total, pct)
	case pct > c.limits.IncreaseWarnPct:
		status = StatusWarning
		msg = fmt.Sprintf("Large session increase (%d sessions, %.1f%% increase)", q.Total, pct)
	case abs(pct) > c.limits.ModeratePct:
		status = StatusWarning
		kind := "decrease"
		if pct > 0 {
			kind = "increase"
		}
		msg = fmt.Sprintf("Moderate session %s (%d sessions, %.1f%%)", kind, q.Total, pct)
	default:
		status = StatusSuccess
		msg = fmt.Sprintf("Session count normal (%d sessions, %.1f%%)", q.Total, pct)
	}

	return NewResult(status, msg, metrics, details)
}

// countChanges returns pre/post counts for keys whose count differs
func countChanges(pre, post map[string]int) map[string]Change {
	changes := map[string]Change{}
	for k, n := range pre {
		if m := post[k]; m != n {
			changes[k] = Change{Pre: n, Post: m, Change: m - n}
		}
	}
	for k, m := range post {
		if _, seen := pre[k]; !seen && m != 0 {
			changes[k] = Change{Pre: 0, Post: m, Change: m}
		}
	}
	return changes
}

func copyCounts(m map[string]int) map[string]int {
	out := make(map[string]int, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
