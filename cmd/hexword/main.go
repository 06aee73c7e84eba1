// hexword turns any word into a unique hex colour.
//
// It prints colours, names them, renders share cards and serves a
// Farcaster frame.
package main

import (
	"github.com/jmylchreest/hexword/internal/cli"
)

func main() {
	cli.Execute()
}
