// internal/compare/comparator.go
package compare

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Record is the parsed form of one command's output at one point in time
type Record interface {
	// Command is the identifier of the command that produced the record
	Command() string
	// Len is the number of parsed entries
	Len() int
}

// Comparator parses one command's output and classifies pre/post deltas.
// Parse and Compare must never panic; malformed input yields empty records.
type Comparator interface {
	Command() string
	Name() string
	Parse(raw string) Record
	Compare(pre, post Record) Result
}

// CompareFiles reads, parses and compares a pre/post capture pair.
// Read and parse failures are returned as an ERROR result.
func CompareFiles(c Comparator, prePath, postPath string) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = NewResult(StatusError, fmt.Sprintf("Error comparing files: %v", r), nil, nil)
		}
	}()

	pre, err := os.ReadFile(prePath)
	if err != nil {
		return readFailure(err)
	}
	post, err := os.ReadFile(postPath)
	if err != nil {
		return readFailure(err)
	}

	return c.Compare(c.Parse(string(pre)), c.Parse(string(post)))
}

// CompareText parses and compares two raw outputs held in memory
func CompareText(c Comparator, pre, post string) Result {
	return c.Compare(c.Parse(pre), c.Parse(post))
}

func readFailure(err error) Result {
	if errors.Is(err, fs.ErrNotExist) {
		return NewResult(StatusError, fmt.Sprintf("File not found: %v", err), nil, nil)
	}
	return NewResult(StatusError, fmt.Sprintf("Error comparing files: %v", err), nil, nil)
}

// limitList joins up to n items and notes how many were left out
func limitList(items []string, n int) string {
	if len(items) <= n {
		return strings.Join(items, ", ")
	}
	return fmt.Sprintf("%s (+%d more)", strings.Join(items[:n], ", "), len(items)-n)
}
