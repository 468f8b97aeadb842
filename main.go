package main

import "github.com/snapdoc/snapdoc/cmd"

func main() {
	cmd.Execute()
}
