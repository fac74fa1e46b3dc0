package main

import (
	"github.com/boardtown/gamearea-go/internal/cli"
)

func main() {
	cli.Execute()
}
