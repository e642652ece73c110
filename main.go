package main

import "github.com/Tiliavir/dutyrep/cmd"

func main() {
	cmd.Execute()
}
