package main

import "github.com/LeJamon/txengine/internal/cli"

func main() {
	cli.Execute()
}
