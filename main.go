package main

import "github.com/gaurav-prasanna/nfcepipe/cmd"

func main() {
	cmd.Execute()
}
