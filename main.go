package main

import "github.com/xvierd/daytrack/cmd"

func main() {
	cmd.Execute()
}
