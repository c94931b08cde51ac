package main

import "github.com/finance-tracker/backend/internal/cli"

func main() {
	cli.Execute()
}
