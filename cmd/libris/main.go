package main

import "github.com/aalvaropc/libris/internal/cli"

func main() {
	cli.Execute()
}
