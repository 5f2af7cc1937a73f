package main

import "safeCast/internal/cli"

func main() {
	cli.Execute()
}
