// Command robots checks whether a URL is allowed by a local robots.txt
// file, using Google's robots.txt parsing and matching rules.
package main

import "github.com/rohmanhakim/robotstxt/internal/cli"

func main() {
	cmd.Execute()
}
