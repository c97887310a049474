package main

import (
	"github.com/mocno/bandex/pkg/cli"
)

func main() {
	cli.Execute()
}
