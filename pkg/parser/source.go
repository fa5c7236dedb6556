package parser

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
)

// Line is one raw log line with provenance, before tokenization.
type Line struct {
	// Text is the line content without the trailing newline.
	Text string

	// Source is the file path this line came from.
	Source string

	// Num is the 1-based line number in the source.
	Num int
}

// LineSource provides an iterator over raw log lines. Implementations must
// be safe for sequential access (not concurrent). Next returns io.EOF when
// the stream is exhausted.
type LineSource interface {
	Next(ctx context.Context) (*Line, error)
	Close() error
}

// FileSource reads raw lines from a single log file.
type FileSource struct {
	path    string
	file    *os.File
	scanner *bufio.Scanner
	lineNum int
}

// NewFileSource opens path for line-by-line reading.
func NewFileSource(path string) (*FileSource, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024) // 1MB max line size

	return &FileSource{
		path:    path,
		file:    f,
		scanner: scanner,
	}, nil
}

// Next returns the next raw line, or io.EOF at end of file.
func (s *FileSource) Next(ctx context.Context) (*Line, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return nil, fmt.Errorf("reading %s: %w", s.path, err)
		}
		return nil, io.EOF
	}

	s.lineNum++
	return &Line{
		Text:   s.scanner.Text(),
		Source: s.path,
		Num:    s.lineNum,
	}, nil
}

// Close releases the underlying file.
func (s *FileSource) Close() error {
	if s.file == nil {
		return nil
	}
	err := s.file.Close()
	s.file = nil
	s.scanner = nil
	return err
}

// Run feeds every line from src into the session. Per-line parse failures
// are already counted and logged by the session and do not stop the run;
// only source errors and context cancellation do.
func Run(ctx context.Context, src LineSource, sess *Session) error {
	for {
		line, err := src.Next(ctx)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		//nolint:errcheck // per-line failures are reported via Stats
		_ = sess.ProcessLine(line.Text)
	}
}
