package main

import "github.com/matthieukhl/sheetstock/internal/cmd"

func main() {
	cmd.Execute()
}
