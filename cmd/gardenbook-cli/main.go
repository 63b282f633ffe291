package main

import "gardenbook/cmd/gardenbook-cli/cmd"

func main() {
	cmd.Execute()
}
