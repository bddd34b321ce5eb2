package main

import "github.com/ScottHCollier/inntrac-app/cmd"

func main() {
	cmd.Execute()
}
