package main

import "modulemd/internal/cli"

func main() {
	cli.Execute()
}
