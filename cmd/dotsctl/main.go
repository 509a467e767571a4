package main

import (
	"github.com/dotgrid/dotsboxes-go/internal/cli"
)

func main() {
	cli.Execute()
}
