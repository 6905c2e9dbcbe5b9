// internal/textparse/textparse.go
package textparse

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	numberRe = regexp.MustCompile(`\d+`)
	ipv4Re   = regexp.MustCompile(`\b(?:[0-9]{1,3}\.){3}[0-9]{1,3}\b`)
	macRe    = regexp.MustCompile(`(?:[0-9A-Fa-f]{2}[:-]){5}[0-9A-Fa-f]{2}`)
	rowIDRe  = regexp.MustCompile(`^\d+\s+`)
)

// Lines splits raw CLI output into whitespace-normalized, non-blank lines.
func Lines(raw string) []string {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = Clean(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// Clean collapses runs of whitespace into single spaces and trims the ends.
func Clean(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// IsSeparator reports whether line consists only of '-', '=' and spaces.
func IsSeparator(line string) bool {
	for _, r := range line {
		if r != '-' && r != '=' && r != ' ' {
			return false
		}
	}
	return true
}

// HasHeaderWord reports whether line contains any of the header words,
// compared case-insensitively. Words are expected in lower case.
func HasHeaderWord(line string, words []string) bool {
	lower := strings.ToLower(line)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// Skip reports whether a line is table decoration rather than data.
func Skip(line string, headerWords []string) bool {
	return IsSeparator(line) || HasHeaderWord(line, headerWords)
}

// Numbers returns every digit run in s. Runs too large for an int are dropped.
func Numbers(s string) []int {
	var nums []int
	for _, m := range numberRe.FindAllString(s, -1) {
		n, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		nums = append(nums, n)
	}
	return nums
}

// MaxNumber returns the largest digit run in s.
//
// Summary lines are assumed to carry their total as the biggest number, so
// "rows: 1 of 4523 shown" yields 4523. Paginated output such as
// "1-50 of 3000" happens to work, but any line where a larger unrelated
// number appears (a vsys id, a timestamp) will be misread.
func MaxNumber(s string) (int, bool) {
	nums := Numbers(s)
	if len(nums) == 0 {
		return 0, false
	}
	max := nums[0]
	for _, n := range nums[1:] {
		if n > max {
			max = n
		}
	}
	return max, true
}

// FindIPv4 returns the first dotted-quad token in s.
func FindIPv4(s string) (string, bool) {
	m := ipv4Re.FindString(s)
	return m, m != ""
}

// FindMAC returns the first colon- or dash-separated MAC address in s.
func FindMAC(s string) (string, bool) {
	m := macRe.FindString(s)
	return m, m != ""
}

// HasRowID reports whether line starts with a numeric id followed by whitespace.
func HasRowID(line string) bool {
	return rowIDRe.MatchString(line)
}

// Field returns fields[i], or def when the index is out of range.
func Field(fields []string, i int, def string) string {
	if i < 0 || i >= len(fields) {
		return def
	}
	return fields[i]
}
