package main

import "github.com/kepazon/my-sumatrapdf/internal/cli"

func main() {
	cli.Execute()
}
