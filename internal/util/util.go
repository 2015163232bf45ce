package util

import (
	"os"
	"strings"
)

// Contains checks if a slice contains a specific string
func Contains(slice []string, val string) bool {
	for _, item := range slice {
		if item == val {
			return true
		}
	}
	return false
}

// Chunk splits s into consecutive slices of at most size elements, keeping
// the original order. The chunks share s's backing array.
func Chunk[T any](s []T, size int) [][]T {
	if size < 1 || len(s) == 0 {
		return nil
	}
	chunks := make([][]T, 0, (len(s)+size-1)/size)
	for size < len(s) {
		chunks = append(chunks, s[:size:size])
		s = s[size:]
	}
	return append(chunks, s)
}

// ReadTrimmedFile returns the content of path without surrounding whitespace.
// An empty path returns an empty string.
func ReadTrimmedFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
