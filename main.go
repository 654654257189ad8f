package main

import "github.com/teachlens/teachlens-pipeline/cmd"

func main() {
	cmd.Execute()
}
