package main

import "github.com/sokoban/levelbuilder/cmd"

func main() {
	cmd.Execute()
}
