package main

import "github.com/NonmaskableInt/alpaca-mcp/cmd"

func main() {
	cmd.Execute()
}
