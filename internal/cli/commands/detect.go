package commands

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/appfwlog/appfwlog/pkg/detector"
)

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "detect <log-file>",
		Short: "Check whether a file is an application firewall log",
		Long: `Check whether a file is a macOS application firewall log.

The check reads only the first line: a genuine appfirewall.log starts with
the firewall's log-creation record. Files that begin mid-stream (rotated
tails, truncated copies) are reported as not detected even though parse
--force can still process them.

Exit codes:
  0 - File is an application firewall log
  1 - File is not an application firewall log
  2 - File could not be read`,
		Args: cobra.ExactArgs(1),
		RunE: runDetect,
	}
}

func runDetect(cmd *cobra.Command, args []string) error {
	path := args[0]

	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		// Empty file: nothing to detect on.
		fmt.Printf("%s: not an application firewall log (empty file)\n", path)
		ExitCode = 1
		return nil
	}

	if detector.Detect(scanner.Text()) {
		fmt.Printf("%s: application firewall log\n", path)
		return nil
	}

	fmt.Printf("%s: not an application firewall log\n", path)
	ExitCode = 1
	return nil
}
