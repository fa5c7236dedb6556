package parser

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/appfwlog/appfwlog/pkg/event"
)

func writeLog(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "appfirewall.log")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileSource_Next(t *testing.T) {
	path := writeLog(t, "first line\nsecond line\nthird line\n")

	source, err := NewFileSource(path)
	if err != nil {
		t.Fatal(err)
	}
	defer source.Close()

	ctx := context.Background()
	var lines []*Line
	for {
		line, err := source.Next(ctx)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		lines = append(lines, line)
	}

	if len(lines) != 3 {
		t.Fatalf("Got %d lines, want 3", len(lines))
	}
	if lines[0].Text != "first line" {
		t.Errorf("Text = %q, want %q", lines[0].Text, "first line")
	}
	if lines[0].Num != 1 || lines[2].Num != 3 {
		t.Errorf("line numbers = %d, %d; want 1, 3", lines[0].Num, lines[2].Num)
	}
	if lines[0].Source != path {
		t.Errorf("Source = %q, want %q", lines[0].Source, path)
	}
}

func TestFileSource_EmptyFile(t *testing.T) {
	path := writeLog(t, "")

	source, err := NewFileSource(path)
	if err != nil {
		t.Fatal(err)
	}
	defer source.Close()

	if _, err := source.Next(context.Background()); err != io.EOF {
		t.Errorf("Next() error = %v, want io.EOF", err)
	}
}

func TestFileSource_FileNotFound(t *testing.T) {
	if _, err := NewFileSource("/nonexistent/appfirewall.log"); err == nil {
		t.Error("NewFileSource() expected error for missing file")
	}
}

func TestFileSource_ContextCancellation(t *testing.T) {
	path := writeLog(t, "a line\n")

	source, err := NewFileSource(path)
	if err != nil {
		t.Fatal(err)
	}
	defer source.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel() // Cancel immediately

	if _, err := source.Next(ctx); err != context.Canceled {
		t.Errorf("Next() error = %v, want context.Canceled", err)
	}
}

func TestRun_SkipsBadLinesAndContinues(t *testing.T) {
	path := writeLog(t,
		"Nov  2 04:07:35 host socketfilterfw[112] <Info>: Dropbox: Allow (in:0 out:2)\n"+
			"totally unparsable\n"+
			"Nov  2 04:08:11 host socketfilterfw[112] <Info>: Spotify: Deny\n")

	source, err := NewFileSource(path)
	if err != nil {
		t.Fatal(err)
	}
	defer source.Close()

	sink := &event.MemorySink{}
	sess := NewSession(&YearResolver{Hint: 2013}, sink)

	if err := Run(context.Background(), source, sess); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if len(sink.Events) != 2 {
		t.Errorf("Got %d events, want 2", len(sink.Events))
	}
	if got := sess.Stats().NoMatch; got != 1 {
		t.Errorf("NoMatch = %d, want 1", got)
	}
}
