package main

import (
	"cryptochat/internal/cli"
)

func main() {
	cli.Run()
}
