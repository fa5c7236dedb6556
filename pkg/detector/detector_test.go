package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{
			name: "init record",
			line: "Oct 1 00:00:00 Host-1 socketfilterfw[1] <Error>: creating /var/log/appfirewall.log",
			want: true,
		},
		{
			name: "init record with process segment",
			line: "Nov  2 04:06:47 DarkTemplar-2.local socketfilterfw[112] <Error>: Logging: creating /var/log/appfirewall.log",
			want: true,
		},
		{
			name: "right shape, wrong action",
			line: "Oct 1 00:00:00 Host-1 socketfilterfw[1] <Error>: Dropbox: Allow (in:0 out:2)",
			want: false,
		},
		{
			name: "right shape and action, wrong status",
			line: "Oct 1 00:00:00 Host-1 socketfilterfw[1] <Info>: creating /var/log/appfirewall.log",
			want: false,
		},
		{
			name: "ordinary record",
			line: "Nov  2 04:07:35 DarkTemplar-2.local socketfilterfw[112] <Info>: Dropbox: Allow (in:0 out:2)",
			want: false,
		},
		{
			name: "repeated marker is not a first line",
			line: "Nov 29 22:18:29 --- last message repeated 1 time ---",
			want: false,
		},
		{
			name: "not a log line at all",
			line: "lorem ipsum dolor sit amet",
			want: false,
		},
		{
			name: "empty line",
			line: "",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.line))
		})
	}
}
