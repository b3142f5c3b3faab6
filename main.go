package main

import "mrig/cmd"

func main() {
	cmd.Execute()
}
