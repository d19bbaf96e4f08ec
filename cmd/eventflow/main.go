package main

import "github.com/jacolabs/eventflow/internal/cli"

func main() {
	cli.Execute()
}
