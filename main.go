// Package main is the entry point for csinsights, a FACEIT proxy backend and
// CLI that produces deterministic utility-analysis reports for CS2 matches.
package main

import "github.com/pable/csinsights/cmd"

func main() {
	cmd.Execute()
}
