package main

import "github.com/lightningstudio/watchbili/cmd"

func main() {
	cmd.Execute()
}
