package event

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvent() *Event {
	return &Event{
		Timestamp:    time.Date(2013, time.November, 2, 4, 7, 35, 0, time.UTC),
		ComputerName: "DarkTemplar-2.local",
		Agent:        "socketfilterfw[112]",
		Status:       "Info",
		ProcessName:  "Dropbox",
		Action:       "Allow (in:0 out:2)",
		Source:       "/var/log/appfirewall.log",
	}
}

func TestTextSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewTextSink(&buf)

	require.NoError(t, sink.Emit(sampleEvent()))
	assert.Equal(t,
		"2013-11-02T04:07:35Z DarkTemplar-2.local socketfilterfw[112] <Info> Dropbox: Allow (in:0 out:2)\n",
		buf.String())
}

func TestTextSink_EmptyProcessName(t *testing.T) {
	var buf bytes.Buffer
	sink := NewTextSink(&buf)

	ev := sampleEvent()
	ev.ProcessName = ""
	require.NoError(t, sink.Emit(ev))
	assert.Contains(t, buf.String(), "<Info> -: Allow")
}

func TestJSONSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONSink(&buf)

	require.NoError(t, sink.Emit(sampleEvent()))
	require.NoError(t, sink.Emit(sampleEvent()))

	// One JSON object per line.
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var decoded Event
	require.NoError(t, json.Unmarshal(lines[0], &decoded))
	assert.Equal(t, "Dropbox", decoded.ProcessName)
	assert.Equal(t, "Allow (in:0 out:2)", decoded.Action)
	assert.True(t, decoded.Timestamp.Equal(sampleEvent().Timestamp))
}

func TestMemorySink(t *testing.T) {
	sink := &MemorySink{}
	require.NoError(t, sink.Emit(sampleEvent()))
	require.NoError(t, sink.Emit(sampleEvent()))
	assert.Len(t, sink.Events, 2)
}
