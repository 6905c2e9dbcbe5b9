// internal/compare/result.go
package compare

// Status classifies a pre/post comparison
type Status string

const (
	StatusSuccess Status = "success"
	StatusWarning Status = "warning"
	StatusError   Status = "error"
	StatusInfo    Status = "info"
)

// Glyph returns the icon appended to messages of this status
func (s Status) Glyph() string {
	switch s {
	case StatusSuccess:
		return "✅"
	case StatusWarning:
		return "⚠️"
	case StatusError:
		return "❌"
	default:
		return "ℹ️"
	}
}

// Result is the classified outcome of comparing two records
type Result struct {
	Status  Status             `json:"status"`
	Message string             `json:"message"`
	Metrics map[string]float64 `json:"metrics"`
	Details map[string]any     `json:"details"`
}

// NewResult builds a Result whose message ends in the status glyph.
// Nil metrics and details are replaced with empty maps.
func NewResult(status Status, message string, metrics map[string]float64, details map[string]any) Result {
	if metrics == nil {
		metrics = map[string]float64{}
	}
	if details == nil {
		details = map[string]any{}
	}
	return Result{
		Status:  status,
		Message: message + " " + status.Glyph(),
		Metrics: metrics,
		Details: details,
	}
}

// Change is a pre/post count pair for a single state or protocol
type Change struct {
	Pre    int `json:"pre"`
	Post   int `json:"post"`
	Change int `json:"change"`
}

// PercentChange returns (post-pre)/pre*100. A zero pre yields 100 when
// post is positive and 0 otherwise.
func PercentChange(pre, post int) float64 {
	if pre == 0 {
		if post > 0 {
			return 100
		}
		return 0
	}
	return float64(post-pre) * 100 / float64(pre)
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
