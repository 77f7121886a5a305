package main

import "github.com/jsphweid/rhythmdex/cmd"

func main() {
	cmd.Execute()
}
