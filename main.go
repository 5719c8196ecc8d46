package main

import "tao-cli/cmd"

func main() {
	cmd.Execute()
}
