package main

import "matchup-model/cmd"

func main() {
	cmd.Execute()
}
