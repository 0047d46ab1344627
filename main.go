package main

import "github.com/KaramelBytes/firedash/cmd"

func main() {
	cmd.Execute()
}
