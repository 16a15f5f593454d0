package main

import "github.com/podscope/podscope/cmd"

func main() {
	cmd.Execute()
}
