package base

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sync/atomic"
	"unicode/utf8"

	"benny/pkg/util"
)

// countFilesAndLines walks root and counts regular files plus the lines of
// every file that reads as UTF-8 text. Unreadable entries are skipped.
func countFilesAndLines(ctx context.Context, root string) (files, lines uint64) {
	paths := collectFiles(root)

	var total atomic.Uint64
	_ = util.Parallel(ctx, paths, runtime.NumCPU(), func(_ context.Context, path string) error {
		data, err := os.ReadFile(path)
		if err != nil || !utf8.Valid(data) {
			return nil
		}
		total.Add(countLines(data))
		return nil
	})

	return uint64(len(paths)), total.Load()
}

// collectFiles lists regular files under root. Symlinks are followed; a
// directory reached twice through links is only read once.
func collectFiles(root string) []string {
	var paths []string
	seen := make(map[string]bool)
	stack := []string{root}
	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		resolved, err := filepath.EvalSymlinks(dir)
		if err != nil || seen[resolved] {
			continue
		}
		seen[resolved] = true

		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, e := range entries {
			path := filepath.Join(dir, e.Name())
			info, err := os.Stat(path)
			if err != nil {
				continue
			}
			switch {
			case info.IsDir():
				stack = append(stack, path)
			case info.Mode().IsRegular():
				paths = append(paths, path)
			}
		}
	}
	return paths
}

// countLines counts lines the way a text reader does: a trailing newline does
// not start a new line, and an empty file has none.
func countLines(data []byte) uint64 {
	if len(data) == 0 {
		return 0
	}
	n := uint64(bytes.Count(data, []byte{'\n'}))
	if data[len(data)-1] != '\n' {
		n++
	}
	return n
}
