// internal/check/runner_test.go
package check

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infinisean/papub/internal/capture"
	"github.com/infinisean/papub/internal/compare"
	"github.com/infinisean/papub/internal/logger"
)

func newRunner(staleAfter time.Duration) *Runner {
	return New(compare.DefaultRegistry(compare.DefaultThresholds()), logger.Discard(), staleAfter)
}

func write(t *testing.T, dir, command string, ctx capture.Context, at time.Time, body string) {
	t.Helper()
	path := filepath.Join(dir, capture.FormatName(command, ctx, at, false))
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
}

func TestCheckHost(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "fw01")
	require.NoError(t, os.Mkdir(dir, 0755))

	pre := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	post := pre.Add(time.Hour)

	write(t, dir, "show arp all", capture.Pre, pre,
		"ethernet1/1 10.0.0.1 00:1b:17:00:01:01 ethernet1/1 c\nethernet1/1 10.0.0.2 00:1b:17:00:01:02 ethernet1/1 c\n")
	write(t, dir, "show arp all", capture.Post, post,
		"ethernet1/1 10.0.0.1 00:1b:17:00:01:01 ethernet1/1 c\n")
	write(t, dir, "show session all filter count yes", capture.Pre, pre, "Number of sessions that match filter: 1000\n")
	write(t, dir, "show session all filter count yes", capture.Post, post, "Number of sessions that match filter: 1001\n")
	write(t, dir, "show session all", capture.Pre, pre, "total sessions: 100\n")
	write(t, dir, "show session all", capture.Post, post, "total sessions: 130\n")
	write(t, dir, "show routing route", capture.Pre, pre, "whatever\n")
	write(t, dir, "show routing route", capture.Post, post, "whatever\n")

	rep, err := newRunner(24*time.Hour).CheckHost(root, "fw01")
	require.NoError(t, err)

	assert.Equal(t, "fw01", rep.Host)
	require.Len(t, rep.Outcomes, 3)

	byCmd := map[string]Outcome{}
	for _, o := range rep.Outcomes {
		byCmd[o.Command] = o
	}
	assert.Equal(t, compare.StatusError, byCmd[compare.CommandArp].Result.Status)
	assert.Equal(t, "ARP Table", byCmd[compare.CommandArp].Name)
	assert.Equal(t, compare.StatusWarning, byCmd[compare.CommandSessions].Result.Status)
	assert.Equal(t, compare.StatusSuccess, byCmd[compare.CommandSessionCount].Result.Status)
	assert.True(t, post.Equal(byCmd[compare.CommandArp].PostAt))
	assert.False(t, byCmd[compare.CommandArp].Stale)

	assert.Equal(t, Summary{Success: 1, Warning: 1, Error: 1}, rep.Summary)
	assert.Equal(t, 3, rep.Summary.Total())
	assert.True(t, rep.Summary.Failed())
}

func TestCheckHostStalePre(t *testing.T) {
	dir := t.TempDir()
	pre := time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC)
	post := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)

	write(t, dir, "show session all filter count yes", capture.Pre, pre, "total 10\n")
	write(t, dir, "show session all filter count yes", capture.Post, post, "total 10\n")

	rep, err := newRunner(24*time.Hour).CheckDir("fw02", dir)
	require.NoError(t, err)
	require.Len(t, rep.Outcomes, 1)
	assert.True(t, rep.Outcomes[0].Stale)

	rep, err = newRunner(0).CheckDir("fw02", dir)
	require.NoError(t, err)
	assert.False(t, rep.Outcomes[0].Stale)
}

func TestCheckHostNoPairs(t *testing.T) {
	dir := t.TempDir()
	write(t, dir, "show arp all", capture.Pre, time.Now(), "x")

	rep, err := newRunner(0).CheckDir("fw03", dir)
	require.NoError(t, err)

	assert.Empty(t, rep.Outcomes)
	assert.NotNil(t, rep.Outcomes)
	assert.False(t, rep.Summary.Failed())
}

func TestCheckHostMissingDir(t *testing.T) {
	_, err := newRunner(0).CheckHost(t.TempDir(), "ghost")

	assert.ErrorIs(t, err, capture.ErrNoHostDir)
}
