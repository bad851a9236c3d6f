package main

import "github.com/impactboard/admin-cli/internal/cmd"

func main() {
	cmd.Execute()
}
