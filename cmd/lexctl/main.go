package main

import "github.com/annthusiaast/lexctl/cmd/lexctl/cmd"

func main() {
	cmd.Execute()
}
