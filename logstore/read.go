package logstore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Recent returns up to limit log lines, newest first. Files are read
// newest-day-first and lines within a file newest-first. A missing or
// unreadable file is treated as empty; Recent never fails.
func (s *Store) Recent(limit int) []string {
	if limit <= 0 {
		return nil
	}

	files, err := s.files()
	if err != nil {
		return nil
	}

	var out []string
	for i := len(files) - 1; i >= 0 && len(out) < limit; i-- {
		lines := readLines(files[i])
		for j := len(lines) - 1; j >= 0 && len(out) < limit; j-- {
			out = append(out, lines[j])
		}
	}
	return out
}

// Export writes every log file to w in filename order, each preceded
// by a section header.
func (s *Store) Export(w io.Writer) error {
	files, err := s.files()
	if err != nil {
		return fmt.Errorf("failed to list log files: %w", err)
	}

	for _, path := range files {
		if _, err := fmt.Fprintf(w, "=== %s ===\n", filepath.Base(path)); err != nil {
			return err
		}
		data, rerr := os.ReadFile(path)
		if rerr != nil {
			// Partially written or concurrently rotated file: skip its body.
			continue
		}
		if _, err := w.Write(data); err != nil {
			return err
		}
		if len(data) > 0 && data[len(data)-1] != '\n' {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

// ExportString is Export into a string.
func (s *Store) ExportString() (string, error) {
	var b strings.Builder
	if err := s.Export(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// Clear deletes all log files.
func (s *Store) Clear() error {
	files, err := s.files()
	if err != nil {
		return fmt.Errorf("failed to list log files: %w", err)
	}
	var firstErr error
	for _, path := range files {
		if err := os.Remove(path); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Dir returns the directory the store writes to.
func (s *Store) Dir() string { return s.dir }

func readLines(path string) []string {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return nil
	}
	return lines
}
