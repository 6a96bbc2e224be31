package main

import "github.com/theirongolddev/mywallet/cmd"

func main() {
	cmd.Execute()
}
