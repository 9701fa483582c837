package main

import "github.com/statloom/statloom-cli/cmd"

func main() {
	cmd.Execute()
}
