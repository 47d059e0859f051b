package main

import "github.com/adr1978/coverstudio/cmd/coverstudio/cmd"

func main() {
	cmd.Execute()
}
