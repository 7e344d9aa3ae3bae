package main

import (
	"os"

	"github.com/representatives-dao/repms/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
