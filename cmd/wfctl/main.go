package main

import "wfcatalog/internal/cli"

func main() {
	cli.Execute()
}
