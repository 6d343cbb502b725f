package main

import "github.com/LaffeyOvO/notesnook/cmd"

func main() {
	cmd.Execute()
}
