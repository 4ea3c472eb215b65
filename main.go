package main

import "meshview/internal/cmd"

func main() {
	cmd.Parse()
}
