package main

import "github.com/openadapt/oadesc/cmd"

func main() {
	cmd.Execute()
}
