package main

import (
	"os"

	"calibra/coach-app/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
