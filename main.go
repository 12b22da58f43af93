package main

import "github.com/mj1618/desktop-matrix/cmd"

func main() {
	cmd.Execute()
}
