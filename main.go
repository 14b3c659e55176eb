package main

import "studyctl/cmd"

func main() {
	cmd.Execute()
}
