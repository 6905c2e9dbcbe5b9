// internal/compare/sessioncount_test.go
package compare

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSessionCount(t *testing.T) {
	data, err := os.ReadFile("testdata/show_session_all_filter_count_yes.txt")
	require.NoError(t, err)

	assert.Equal(t, 4523, ParseSessionCount(string(data)).Total)

	tests := map[string]int{
		"":                                  0,
		"no numbers at all":                 0,
		"vsys1 12\nTotal: 7":                7,
		"Sessions: 15 of 200\nTotal: 9":     200,
		"Session table empty\nTotal: 3":     3,
		"rows 5\nanything else 6\nTOTAL 11": 11,
	}
	for raw, want := range tests {
		assert.Equal(t, want, ParseSessionCount(raw).Total, raw)
	}
}

func TestSessionCountComparatorThresholds(t *testing.T) {
	c := NewSessionCountComparator(DefaultThresholds().SessionCount)

	tests := []struct {
		post int
		want Status
	}{
		{post: 1000, want: StatusSuccess},
		{post: 950, want: StatusSuccess},
		{post: 920, want: StatusSuccess},
		{post: 890, want: StatusWarning},
		{post: 850, want: StatusWarning},
		{post: 849, want: StatusError},
		{post: 1110, want: StatusWarning},
		{post: 3000, want: StatusWarning},
	}

	for _, tt := range tests {
		res := c.Compare(&SessionCountRecord{Total: 1000}, &SessionCountRecord{Total: tt.post})

		assert.Equal(t, tt.want, res.Status, "post=%d", tt.post)
		assert.Equal(t, float64(tt.post-1000), res.Metrics["change"])
		assert.NotNil(t, res.Details)
	}
}

func TestSessionCountComparatorText(t *testing.T) {
	c := NewSessionCountComparator(DefaultThresholds().SessionCount)

	res := CompareText(c,
		"Number of sessions that match filter: 4000",
		"Number of sessions that match filter: 3000",
	)

	assert.Equal(t, StatusError, res.Status)
	assert.Equal(t, "Session count dropped (3000 sessions, -1000) ❌", res.Message)
	assert.Equal(t, float64(-25), res.Metrics["percentage_change"])
}
