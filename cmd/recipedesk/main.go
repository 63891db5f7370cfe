// recipedesk is a terminal client for a recipe server.
//
// Usage:
//
//	recipedesk [tui] [--open PATH]
//	recipedesk list [--filter TEXT]
//	recipedesk show|update|delete ID
//	recipedesk create [--name N --procedure P --ingredients a,b]
//	recipedesk serve [--addr HOST:PORT]
//	recipedesk config show|init
package main

import (
	"errors"
	"fmt"
	"os"
)

// errReported marks a failure the user has already been told about.
var errReported = errors.New("already reported")

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "error: "+err.Error())
		}
		os.Exit(1)
	}
}
