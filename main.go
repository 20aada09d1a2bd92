package main

import "github.com/iksnae/clicker-session/cmd"

func main() {
	cmd.Execute()
}
