package main

import "github.com/quantrail/edascan/cmd"

func main() {
	cmd.Execute()
}
