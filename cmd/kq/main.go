package main

import "github.com/ProbeLab/kicadquery/cmd/kq/cmd"

func main() {
	cmd.Execute()
}
