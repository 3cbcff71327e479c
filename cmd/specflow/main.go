// cmd/specflow/main.go
//
// Entry point for the specflow CLI.

package main

import "github.com/specflow-dev/specflow/internal/cli"

var version = "dev"

func main() {
	cli.Execute(version)
}
