package main

import "github.com/TrueSelph/ultramsg-action/cmd"

func main() {
	cmd.Execute()
}
