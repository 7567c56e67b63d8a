package main

import "mod-manager/cmd"

func main() {
	cmd.Execute()
}
