package main

import (
	"os"

	"example.com/exam-crud/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
