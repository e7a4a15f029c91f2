package main

import "github.com/sadopc/mastery/internal/cli"

func main() {
	cli.Execute()
}
