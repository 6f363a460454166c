package main

import "github.com/theirongolddev/pflow/cmd"

func main() {
	cmd.Execute()
}
