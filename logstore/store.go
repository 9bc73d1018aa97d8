// Package logstore persists diagnostic log lines to date-partitioned
// files with count-based rotation. Writes are serialized on a single
// background goroutine and never block or fail the caller: logging
// must not be able to crash the host application.
package logstore

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/vietddude/triage/config"
	"github.com/vietddude/triage/domain"
	"github.com/vietddude/triage/metrics"
)

const (
	filePrefix = "errors-"
	fileSuffix = ".log"
	dayFormat  = "2006-01-02"
	tsFormat   = "2006-01-02T15:04:05.000Z07:00"
)

type record struct {
	msg string
	sev domain.Severity
	at  time.Time
}

// Store is a date-partitioned, size-rotated persistent log.
type Store struct {
	dir         string
	maxFileSize int64
	maxFiles    int

	queue chan record
	quit  chan struct{}
	done  chan struct{}

	closeOnce sync.Once
}

// New creates the log directory if needed and starts the writer.
func New(cfg config.LogConfig) (*Store, error) {
	if cfg.Dir == "" {
		return nil, fmt.Errorf("log dir must not be empty")
	}
	if err := os.MkdirAll(cfg.Dir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log dir: %w", err)
	}

	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = 256
	}
	maxFileSize := cfg.MaxFileSize
	if maxFileSize <= 0 {
		maxFileSize = 10 << 20
	}
	maxFiles := cfg.MaxFiles
	if maxFiles <= 0 {
		maxFiles = 5
	}

	s := &Store{
		dir:         cfg.Dir,
		maxFileSize: maxFileSize,
		maxFiles:    maxFiles,
		queue:       make(chan record, queueSize),
		quit:        make(chan struct{}),
		done:        make(chan struct{}),
	}
	go s.run()
	return s, nil
}

// Append enqueues a log line. It never blocks beyond the enqueue: when
// the queue is full the record is dropped and counted.
func (s *Store) Append(msg string, sev domain.Severity) {
	rec := record{msg: msg, sev: sev, at: time.Now().UTC()}

	select {
	case <-s.quit:
		return
	default:
	}

	select {
	case s.queue <- rec:
	case <-s.quit:
	default:
		metrics.LogLinesDropped.Inc()
		slog.Warn("log queue full, dropping record", "severity", sev.String())
	}
}

// Close stops intake and drains pending records, bounded by ctx.
func (s *Store) Close(ctx context.Context) error {
	var err error
	s.closeOnce.Do(func() {
		close(s.quit)
		select {
		case <-s.done:
		case <-ctx.Done():
			err = ctx.Err()
		}
	})
	return err
}

func (s *Store) run() {
	defer close(s.done)
	for {
		select {
		case rec := <-s.queue:
			s.write(rec)
		case <-s.quit:
			// Drain whatever was enqueued before shutdown.
			for {
				select {
				case rec := <-s.queue:
					s.write(rec)
				default:
					return
				}
			}
		}
	}
}

// write runs on the writer goroutine only. I/O failures are logged
// and swallowed.
func (s *Store) write(rec record) {
	name := filePrefix + rec.at.Format(dayFormat) + fileSuffix
	path := filepath.Join(s.dir, name)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		metrics.LogWriteFailures.Inc()
		slog.Error("failed to open log file", "path", path, "error", err)
		return
	}

	line := "[" + rec.at.Format(tsFormat) + "] [" + rec.sev.Upper() + "] " + rec.msg + "\n"
	_, werr := f.WriteString(line)
	size := int64(0)
	if info, serr := f.Stat(); serr == nil {
		size = info.Size()
	}
	_ = f.Close()

	if werr != nil {
		metrics.LogWriteFailures.Inc()
		slog.Error("failed to write log line", "path", path, "error", werr)
		return
	}
	metrics.LogLinesWritten.Inc()

	if size > s.maxFileSize {
		s.rotate()
	}
}

// rotate deletes the oldest log files until at most maxFiles remain.
// Retention is count-based across all days' files; the oversized
// current file is never truncated.
func (s *Store) rotate() {
	files, err := s.files()
	if err != nil {
		slog.Error("rotation: failed to list log files", "error", err)
		return
	}
	if len(files) <= s.maxFiles {
		return
	}

	deleted := 0
	for _, path := range files[:len(files)-s.maxFiles] {
		if err := os.Remove(path); err != nil {
			slog.Error("rotation: failed to delete log file", "path", path, "error", err)
			continue
		}
		deleted++
	}
	if deleted > 0 {
		metrics.LogRotations.Inc()
		metrics.LogFilesDeleted.Add(float64(deleted))
		slog.Debug("rotated log files", "deleted", deleted, "kept", s.maxFiles)
	}
}

// files lists log files sorted ascending. Filenames embed the UTC day,
// so lexical order is creation order.
func (s *Store) files() ([]string, error) {
	files, err := filepath.Glob(filepath.Join(s.dir, filePrefix+"*"+fileSuffix))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}
