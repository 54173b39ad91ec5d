package main

import "github.com/mcoot/codewords/internal/cli"

func main() {
	cli.Execute()
}
