package main

import "github.com/Adprivat/praxislabor/cmd"

func main() {
	cmd.Execute()
}
