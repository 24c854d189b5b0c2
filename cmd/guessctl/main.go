package main

import (
	"github.com/aborovsky/splashsoftware-fullstack-44/internal/cli"
)

func main() {
	cli.Execute()
}
