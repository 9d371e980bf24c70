package main

import "github.com/inovacc/roundboard/cmd"

func main() {
	cmd.Execute()
}
