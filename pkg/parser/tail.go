package parser

import (
	"context"
	"fmt"
	"io"

	"github.com/nxadm/tail"
)

// TailSource streams lines appended to a live log file, surviving rotation.
// It implements LineSource; Next blocks until a line arrives, the context is
// canceled, or the tail is stopped.
type TailSource struct {
	path    string
	tailer  *tail.Tail
	lineNum int
}

// NewTailSource starts tailing path from its current end.
func NewTailSource(path string) (*TailSource, error) {
	t, err := tail.TailFile(path, tail.Config{
		Follow:    true,
		ReOpen:    true, // handle log rotation
		MustExist: true,
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("tailing log file %s: %w", path, err)
	}

	return &TailSource{
		path:   path,
		tailer: t,
	}, nil
}

// Next returns the next appended line.
func (s *TailSource) Next(ctx context.Context) (*Line, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case line, ok := <-s.tailer.Lines:
		if !ok {
			return nil, io.EOF
		}
		if line.Err != nil {
			return nil, fmt.Errorf("tailing %s: %w", s.path, line.Err)
		}
		s.lineNum++
		return &Line{
			Text:   line.Text,
			Source: s.path,
			Num:    s.lineNum,
		}, nil
	}
}

// Close stops the tailer.
func (s *TailSource) Close() error {
	return s.tailer.Stop()
}
