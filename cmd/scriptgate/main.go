package main

import "github.com/lpetrov/scriptgate/internal/cli"

func main() {
	cli.Main()
}
