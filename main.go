package main

import "github.com/NamanBalaji/fman/cmd"

func main() {
	cmd.Execute()
}
