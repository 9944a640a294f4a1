package main

import "tracknest.dev/tracknest/cmd"

func main() {
	cmd.Execute()
}
