// internal/watch/state_test.go
package watch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/infinisean/papub/internal/capture"
)

func TestStateReadWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "watch.yaml")

	// Missing file is an empty state
	st, err := ReadState(path)
	require.NoError(t, err)
	assert.Empty(t, st.Hosts)

	st.Hosts["fw01"] = Fingerprint{"show_arp_all": "a-pre.txt|a-post.txt"}
	require.NoError(t, WriteState(path, st))

	got, err := ReadState(path)
	require.NoError(t, err)
	assert.Equal(t, st.Hosts, got.Hosts)
}

func TestStateCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watch.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hosts: [not, a, map"), 0644))

	st, err := ReadState(path)
	require.NoError(t, err)
	assert.NotNil(t, st.Hosts)
	assert.Empty(t, st.Hosts)
}

func TestFingerprint(t *testing.T) {
	pairs := map[string]capture.Pair{
		"show_arp_all": {
			Pre:  capture.File{Path: "/out/fw01/show_arp_all-pre-01-15-26-10-00-00.txt"},
			Post: capture.File{Path: "/out/fw01/show_arp_all-post-01-15-26-11-00-00.txt"},
		},
	}

	fp := FingerprintOf(pairs)
	assert.Equal(t, Fingerprint{
		"show_arp_all": "show_arp_all-pre-01-15-26-10-00-00.txt|show_arp_all-post-01-15-26-11-00-00.txt",
	}, fp)

	assert.True(t, fp.Equal(FingerprintOf(pairs)))
	assert.False(t, fp.Equal(Fingerprint{}))
	assert.False(t, fp.Equal(Fingerprint{"show_arp_all": "x|y"}))
	assert.True(t, Fingerprint{}.Equal(FingerprintOf(nil)))
}
