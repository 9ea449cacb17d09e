package main

import "github.com/julienstroheker/httperr/internal/cmd"

func main() {
	cmd.Execute()
}
