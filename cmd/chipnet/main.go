package main

import "github.com/bartolsthoorn/chipnet/internal/cli"

func main() {
	cli.Execute()
}
