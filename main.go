// The main package for the annwatch executable.
package main

import (
	"annwatch/cmd"
)

// main is the entry point of the application.
// It defers all execution to the Cobra CLI library.
func main() {
	cmd.Execute()
}
