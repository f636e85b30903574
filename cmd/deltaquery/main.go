package main

import (
	"github.com/dfstats/deltaquery/internal/cli"
)

func main() {
	cli.Execute()
}
