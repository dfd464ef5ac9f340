package main

import "github.com/barkprotocol/blinkshare-platform-sub000/cmd"

var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	cmd.Version = version
	cmd.Commit = commit
	cmd.Execute()
}
