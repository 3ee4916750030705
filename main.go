package main

import (
	"os"

	"atelier/cmd"
)

var exit = os.Exit

func main() {
	exit(RealMain(os.Args[1:]))
}

// RealMain runs the command line and returns the exit code
func RealMain(args []string) int {
	return cmd.Execute(args, os.Stdout, os.Stderr)
}
