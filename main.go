package main

import "github.com/aventurescence/gearplan/cmd"

func main() {
	cmd.Execute()
}
