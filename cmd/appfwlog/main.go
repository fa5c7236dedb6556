// appfwlog - macOS application firewall log parser
//
// appfwlog turns appfirewall.log files into normalized, fully-timestamped
// events, reconstructing the year the source format omits and expanding
// "last message repeated" markers.
package main

import (
	"os"

	"github.com/appfwlog/appfwlog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
