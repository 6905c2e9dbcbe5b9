// internal/watch/state.go
package watch

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/infinisean/papub/internal/capture"
)

// Fingerprint maps each command to the pre and post capture it was last
// compared with
type Fingerprint map[string]string

// FingerprintOf summarizes a set of resolved pairs
func FingerprintOf(pairs map[string]capture.Pair) Fingerprint {
	fp := make(Fingerprint, len(pairs))
	for cmd, p := range pairs {
		fp[cmd] = filepath.Base(p.Pre.Path) + "|" + filepath.Base(p.Post.Path)
	}
	return fp
}

// Equal reports whether both fingerprints name the same captures
func (f Fingerprint) Equal(other Fingerprint) bool {
	if len(f) != len(other) {
		return false
	}
	for cmd, v := range f {
		if ov, ok := other[cmd]; !ok || ov != v {
			return false
		}
	}
	return true
}

// State is the persisted watch state, keyed by host
type State struct {
	Hosts map[string]Fingerprint `yaml:"hosts"`
}

// ReadState loads the state file.
// Returns empty state if file doesn't exist or is corrupt.
func ReadState(path string) (*State, error) {
	st := &State{Hosts: map[string]Fingerprint{}}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return st, nil
	}
	if err != nil {
		return nil, err
	}

	var loaded State
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		// Corrupt file - fresh start
		return st, nil
	}
	for host, fp := range loaded.Hosts {
		if fp != nil {
			st.Hosts[host] = fp
		}
	}

	return st, nil
}

// WriteState writes the state file.
// Creates parent directories if needed.
func WriteState(path string, st *State) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(st)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
