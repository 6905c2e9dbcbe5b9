// internal/textparse/textparse_test.go
package textparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLines(t *testing.T) {
	raw := "  first   line \r\n\n\t\nsecond\tline\n   "

	assert.Equal(t, []string{"first line", "second line"}, Lines(raw))
	assert.Empty(t, Lines(""))
	assert.Empty(t, Lines("\n\n   \n"))
}

func TestIsSeparator(t *testing.T) {
	tests := map[string]bool{
		"-------------":   true,
		"=== === ===":     true,
		"- = -":           true,
		"--- total ---":   false,
		"10.0.0.1":        false,
		"ethernet1/1 ---": false,
	}

	for line, want := range tests {
		assert.Equal(t, want, IsSeparator(line), line)
	}
}

func TestSkip(t *testing.T) {
	words := []string{"interface", "ip address"}

	assert.True(t, Skip("Interface IP Address HW Address Status", words))
	assert.True(t, Skip("--------", words))
	assert.False(t, Skip("ethernet1/1 10.0.0.1 00:11:22:33:44:55 c", words))
	assert.False(t, Skip("anything", nil))
}

func TestMaxNumber(t *testing.T) {
	tests := []struct {
		line   string
		want   int
		wantOK bool
	}{
		{"Number of sessions that match filter: 4523", 4523, true},
		{"rows: 1 of 4523 shown", 4523, true},
		{"1-50 of 3000", 3000, true},
		{"no digits here", 0, false},
		{"", 0, false},
		{"99999999999999999999999 and 7", 7, true},
	}

	for _, tt := range tests {
		got, ok := MaxNumber(tt.line)
		assert.Equal(t, tt.wantOK, ok, tt.line)
		assert.Equal(t, tt.want, got, tt.line)
	}
}

func TestFindIPv4AndMAC(t *testing.T) {
	line := "ethernet1/2 192.168.10.5 00:1b:17:AA:bb:01 c"

	ip, ok := FindIPv4(line)
	assert.True(t, ok)
	assert.Equal(t, "192.168.10.5", ip)

	mac, ok := FindMAC(line)
	assert.True(t, ok)
	assert.Equal(t, "00:1b:17:AA:bb:01", mac)

	mac, ok = FindMAC("vlan 00-1B-17-00-00-02 10.1.1.1")
	assert.True(t, ok)
	assert.Equal(t, "00-1B-17-00-00-02", mac)

	_, ok = FindIPv4("no address")
	assert.False(t, ok)
	_, ok = FindMAC("00:11:22:33:44")
	assert.False(t, ok)
}

func TestHasRowID(t *testing.T) {
	assert.True(t, HasRowID("12345 trust untrust tcp"))
	assert.False(t, HasRowID("ID src dst"))
	assert.False(t, HasRowID("12345"))
	assert.False(t, HasRowID("12a45 trust"))
}

func TestField(t *testing.T) {
	fields := []string{"a", "b"}

	assert.Equal(t, "b", Field(fields, 1, "x"))
	assert.Equal(t, "x", Field(fields, 2, "x"))
	assert.Equal(t, "x", Field(nil, 0, "x"))
}
