package main

import "github.com/nikbrunner/tabzero/cmd/tabzero/cmd"

func main() {
	cmd.Execute()
}
