// The main package for the baugesuche executable.
package main

import (
	"github.com/bauradar/baugesuche-crawler/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
