// internal/compare/sessions_test.go
package compare

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionRecord(total int) *SessionRecord {
	rec := newSessionRecord()
	rec.Total = total
	return rec
}

func TestParseSessions(t *testing.T) {
	data, err := os.ReadFile("testdata/show_session_all.txt")
	require.NoError(t, err)

	rec := ParseSessions(string(data))

	require.Len(t, rec.Entries, 4)
	assert.Equal(t, 4, rec.Total)
	assert.Equal(t, map[string]int{"active": 3, "closed": 1}, rec.States)
	assert.Equal(t, map[string]int{"tcp": 3, "udp": 1}, rec.Protocols)
	assert.Equal(t, 3, rec.Active)
	assert.Equal(t, 1, rec.Closed)
	assert.Equal(t, SessionEntry{
		ID:       "1004",
		SrcZone:  "dmz",
		DstZone:  "untrust",
		Protocol: "tcp",
		SrcIP:    "172.16.1.11",
		DstIP:    "1.1.1.1",
		State:    "active",
	}, rec.Entries[3])
}

func TestParseSessionsSummary(t *testing.T) {
	tests := map[string]struct {
		raw       string
		wantTotal int
		wantRows  int
	}{
		"summary wins over row count": {
			raw:       "1 trust untrust tcp 10.0.0.1 10.0.0.2 active\nTotal sessions: 1 of 4523 shown",
			wantTotal: 4523,
			wantRows:  1,
		},
		"first summary line wins": {
			raw:       "session count: 10\ntotal sessions: 20",
			wantTotal: 10,
		},
		"falls back to rows": {
			raw:       "1 trust untrust tcp 10.0.0.1 10.0.0.2\n2 trust untrust udp 10.0.0.1 10.0.0.3",
			wantTotal: 2,
			wantRows:  2,
		},
		"short rows ignored": {
			raw: "1 trust untrust tcp\n42 sessions",
		},
		"garbage": {
			raw: "%%% no data %%%\n-----\n",
		},
		"empty": {},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			rec := ParseSessions(test.raw)

			assert.Equal(t, test.wantTotal, rec.Total)
			assert.Len(t, rec.Entries, test.wantRows)
			assert.NotNil(t, rec.States)
			assert.NotNil(t, rec.Protocols)
		})
	}
}

func TestSessionComparatorThresholds(t *testing.T) {
	c := NewSessionComparator(DefaultThresholds().Sessions)

	tests := []struct {
		post int
		want Status
		msg  string
	}{
		{post: 100, want: StatusSuccess, msg: "stable"},
		{post: 95, want: StatusSuccess, msg: "stable"},
		{post: 105, want: StatusSuccess, msg: "stable"},
		{post: 92, want: StatusSuccess, msg: "normal"},
		{post: 110, want: StatusSuccess, msg: "normal"},
		{post: 89, want: StatusWarning, msg: "Moderate session decrease"},
		{post: 120, want: StatusWarning, msg: "Moderate session increase"},
		{post: 80, want: StatusWarning, msg: "Moderate session decrease"},
		{post: 79, want: StatusError, msg: "Significant session drop"},
		{post: 150, want: StatusWarning, msg: "Moderate session increase"},
		{post: 151, want: StatusWarning, msg: "Large session increase"},
	}

	for _, tt := range tests {
		res := c.Compare(sessionRecord(100), sessionRecord(tt.post))

		assert.Equal(t, tt.want, res.Status, "post=%d", tt.post)
		assert.Contains(t, res.Message, tt.msg, "post=%d", tt.post)
		assert.True(t, strings.HasSuffix(res.Message, tt.want.Glyph()), res.Message)
		assert.Equal(t, float64(tt.post-100), res.Metrics["total_change"])
	}
}

func TestSessionComparatorDetails(t *testing.T) {
	c := NewSessionComparator(DefaultThresholds().Sessions)
	pre := strings.Join([]string{
		"1 trust untrust tcp 10.0.0.1 8.8.8.8 active",
		"2 trust untrust tcp 10.0.0.2 8.8.8.8 active",
		"3 trust untrust udp 10.0.0.3 8.8.8.8 closed",
	}, "\n")
	post := strings.Join([]string{
		"1 trust untrust tcp 10.0.0.1 8.8.8.8 active",
		"4 trust untrust icmp 10.0.0.4 8.8.8.8 active",
		"5 trust untrust tcp 10.0.0.5 8.8.8.8 active",
	}, "\n")

	res := CompareText(c, pre, post)

	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, float64(2), res.Metrics["pre_active"])
	assert.Equal(t, float64(3), res.Metrics["post_active"])
	assert.Equal(t, map[string]Change{
		"active": {Pre: 2, Post: 3, Change: 1},
		"closed": {Pre: 1, Post: 0, Change: -1},
	}, res.Details["state_changes"])
	assert.Equal(t, map[string]Change{
		"udp":  {Pre: 1, Post: 0, Change: -1},
		"icmp": {Pre: 0, Post: 1, Change: 1},
	}, res.Details["protocol_changes"])
}

func TestSessionComparatorFromNothing(t *testing.T) {
	c := NewSessionComparator(DefaultThresholds().Sessions)

	res := c.Compare(sessionRecord(0), sessionRecord(10))
	assert.Equal(t, StatusWarning, res.Status)
	assert.Equal(t, float64(100), res.Metrics["percentage_change"])

	res = c.Compare(nil, nil)
	assert.Equal(t, StatusSuccess, res.Status)
	assert.Equal(t, float64(0), res.Metrics["percentage_change"])
}
