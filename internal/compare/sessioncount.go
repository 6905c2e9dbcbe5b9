// internal/compare/sessioncount.go
package compare

import (
	"fmt"
	"strings"

	"github.com/infinisean/papub/internal/textparse"
)

const CommandSessionCount = "show_session_all_filter_count_yes"

// SessionCountRecord is the parsed output of "show session all filter count yes"
type SessionCountRecord struct {
	Total int
	Raw   string
}

func (r *SessionCountRecord) Command() string { return CommandSessionCount }
func (r *SessionCountRecord) Len() int        { return r.Total }

// ParseSessionCount takes the largest number on the first line that
// mentions "total" or "session". No such line means a count of zero.
func ParseSessionCount(raw string) *SessionCountRecord {
	rec := &SessionCountRecord{Raw: raw}

	for _, line := range textparse.Lines(raw) {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "total") && !strings.Contains(lower, "session") {
			continue
		}
		if n, ok := textparse.MaxNumber(line); ok {
			rec.Total = n
			break
		}
	}

	return rec
}

// SessionCountComparator classifies changes of the bare session count
type SessionCountComparator struct {
	limits SessionCountThresholds
}

// NewSessionCountComparator creates a session count comparator with the given limits
func NewSessionCountComparator(limits SessionCountThresholds) *SessionCountComparator {
	return &SessionCountComparator{limits: limits}
}

func (c *SessionCountComparator) Command() string { return CommandSessionCount }
func (c *SessionCountComparator) Name() string    { return "Session Count" }

func (c *SessionCountComparator) Parse(raw string) Record { return ParseSessionCount(raw) }

func asSessionCount(r Record) *SessionCountRecord {
	if rec, ok := r.(*SessionCountRecord); ok && rec != nil {
		return rec
	}
	return &SessionCountRecord{}
}

func (c *SessionCountComparator) Compare(pre, post Record) Result {
	p, q := asSessionCount(pre), asSessionCount(post)

	change := q.Total - p.Total
	pct := PercentChange(p.Total, q.Total)

	metrics := map[string]float64{
		"pre_count":         float64(p.Total),
		"post_count":        float64(q.Total),
		"change":            float64(change),
		"percentage_change": pct,
	}

	switch {
	case abs(pct) <= c.limits.StablePct:
		return NewResult(StatusSuccess, fmt.Sprintf("Session count stable (%d sessions)", q.Total), metrics, nil)
	case pct < -c.limits.DropErrorPct:
		return NewResult(StatusError, fmt.Sprintf("Session count dropped (%d sessions, %+d)", q.Total, change), metrics, nil)
	case abs(pct) > c.limits.ModeratePct:
		return NewResult(StatusWarning, fmt.Sprintf("Session count changed (%d sessions, %+d)", q.Total, change), metrics, nil)
	default:
		return NewResult(StatusSuccess, fmt.Sprintf("Session count normal (%d sessions, %+d)", q.Total, change), metrics, nil)
	}
}
