// internal/capture/pairs.go
package capture

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrNoHostDir is returned when a host has no capture directory
var ErrNoHostDir = errors.New("capture directory not found")

// Pattern matches capture files inside a host directory
const Pattern = "*.txt"

// Pair is the newest pre and post capture of one command
type Pair struct {
	Command string
	Pre     File
	Post    File
}

// Scan lists the classifiable captures in dir. The host of every file is
// the base name of dir.
func Scan(dir string, known []string) ([]File, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNoHostDir, dir)
		}
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrNoHostDir, dir)
	}

	names, err := doublestar.Glob(os.DirFS(dir), Pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("list captures: %w", err)
	}

	host := filepath.Base(dir)
	var files []File
	for _, name := range names {
		f, ok := ParseName(name, known)
		if !ok {
			continue
		}
		f.Host = host
		f.Path = filepath.Join(dir, name)
		if st, err := os.Stat(f.Path); err == nil {
			f.ModTime = st.ModTime()
		}
		files = append(files, f)
	}

	return files, nil
}

// newer orders captures newest first: by embedded timestamp, then by
// modification time, then by path so the order never depends on listing order
func newer(a, b File) bool {
	if !a.Timestamp.Equal(b.Timestamp) {
		return a.Timestamp.After(b.Timestamp)
	}
	if !a.ModTime.Equal(b.ModTime) {
		return a.ModTime.After(b.ModTime)
	}
	return a.Path > b.Path
}

// ResolvePairs picks the newest pre and newest post capture per command.
// Commands lacking either side are left out.
func ResolvePairs(files []File) map[string]Pair {
	latest := make(map[string]map[Context]File)

	for _, f := range files {
		sides, ok := latest[f.Command]
		if !ok {
			sides = make(map[Context]File, 2)
			latest[f.Command] = sides
		}
		if cur, ok := sides[f.Context]; !ok || newer(f, cur) {
			sides[f.Context] = f
		}
	}

	pairs := make(map[string]Pair, len(latest))
	for cmd, sides := range latest {
		pre, okPre := sides[Pre]
		post, okPost := sides[Post]
		if !okPre || !okPost {
			continue
		}
		pairs[cmd] = Pair{Command: cmd, Pre: pre, Post: post}
	}

	return pairs
}

// FindPairs scans dir and resolves the newest pre/post pair per command
func FindPairs(dir string, known []string) (map[string]Pair, error) {
	files, err := Scan(dir, known)
	if err != nil {
		return nil, err
	}
	return ResolvePairs(files), nil
}

// SortedCommands returns the commands of pairs in ascending order
func SortedCommands(pairs map[string]Pair) []string {
	cmds := make([]string, 0, len(pairs))
	for cmd := range pairs {
		cmds = append(cmds, cmd)
	}
	sort.Strings(cmds)
	return cmds
}

// Hosts lists the host directories under root, skipping hidden ones
func Hosts(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var hosts []string
	for _, e := range entries {
		if !e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		hosts = append(hosts, e.Name())
	}
	sort.Strings(hosts)
	return hosts, nil
}
