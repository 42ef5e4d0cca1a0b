package main

import "github.com/gaurav-prasanna/newscast/cmd"

func main() {
	cmd.Execute()
}
