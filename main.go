package main

import "github.com/Easwarasrisai789/TaskFlow/cmd"

func main() {
	cmd.Execute()
}
