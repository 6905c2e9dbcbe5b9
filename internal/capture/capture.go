// internal/capture/capture.go
package capture

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// TimestampLayout is the MM-DD-YY-HH-MM-SS stamp embedded in capture names
const TimestampLayout = "01-02-06-15-04-05"

const errorMarker = "ERROR"

var timestampRe = regexp.MustCompile(`\d{2}-\d{2}-\d{2}-\d{2}-\d{2}-\d{2}`)

// Context tells whether a capture was taken before or after the change
type Context string

const (
	Pre  Context = "pre"
	Post Context = "post"
)

func (c Context) marker() string { return "-" + string(c) + "-" }

// File is one capture on disk
type File struct {
	Host      string
	Command   string
	Context   Context
	Timestamp time.Time // zero when the name carries no valid stamp
	ModTime   time.Time
	Path      string
	// Known is false when Command was taken from the name prefix rather
	// than matched against a supported identifier
	Known bool
}

// ParseTimestamp extracts the capture timestamp from a file name
func ParseTimestamp(name string) (time.Time, error) {
	m := timestampRe.FindString(name)
	if m == "" {
		return time.Time{}, errors.New("no timestamp found")
	}
	return time.Parse(TimestampLayout, m)
}

// ParseName classifies a capture file name. Names carrying the error marker
// or no pre/post marker are rejected. The longest identifier from known that
// occurs in the name is taken as the command; when none occurs, the text
// before the pre/post marker is used and File.Known is false.
// A bad timestamp leaves File.Timestamp zero.
func ParseName(name string, known []string) (File, bool) {
	if strings.Contains(name, errorMarker) {
		return File{}, false
	}

	var (
		ctx Context
		idx int
	)
	switch {
	case strings.Contains(name, Pre.marker()):
		ctx, idx = Pre, strings.Index(name, Pre.marker())
	case strings.Contains(name, Post.marker()):
		ctx, idx = Post, strings.Index(name, Post.marker())
	default:
		return File{}, false
	}

	f := File{Context: ctx}
	for _, cmd := range known {
		if strings.Contains(name, cmd) && len(cmd) > len(f.Command) {
			f.Command = cmd
			f.Known = true
		}
	}
	if !f.Known {
		f.Command = name[:idx]
		if f.Command == "" {
			return File{}, false
		}
	}

	f.Timestamp, _ = ParseTimestamp(name)
	return f, true
}

// CommandID turns a CLI command into its identifier ("show arp all" -> "show_arp_all")
func CommandID(command string) string {
	return strings.Join(strings.Fields(command), "_")
}

// FormatName renders the file name a capture collaborator writes for one command
func FormatName(command string, ctx Context, ts time.Time, failed bool) string {
	suffix := ""
	if failed {
		suffix = "-" + errorMarker
	}
	return fmt.Sprintf("%s-%s-%s%s.txt", CommandID(command), ctx, ts.Format(TimestampLayout), suffix)
}
