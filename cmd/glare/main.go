package main

import "github.com/glare-project/glare/internal/cli"

func main() {
	cli.Execute()
}
