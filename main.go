package main

import "github.com/meusprojetos/minhasferramentas/cmd"

func main() {
	cmd.Execute()
}
