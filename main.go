package main

import "github.com/iksnae/promptdiff/cmd"

func main() {
	cmd.Execute()
}
