package main

import "spotter/cmd"

func main() {
	cmd.Execute()
}
