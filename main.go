package main

import "hostgen/cmd"

func main() {
	cmd.Execute()
}
