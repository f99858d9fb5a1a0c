package main

import "github.com/kapu/terrascope/internal/cli"

func main() {
	cli.Execute()
}
