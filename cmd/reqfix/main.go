package main

import "reqfix/internal/cli"

func main() {
	cli.Execute()
}
