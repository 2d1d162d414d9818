package main

import "span-checker/api/internal/cli"

func main() {
	cli.Execute()
}
