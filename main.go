package main

import "github.com/aerolab/govlm/cmd"

func main() {
	cmd.Execute()
}
