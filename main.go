package main

import (
	"os"

	"github.com/structhound/structhound/cmd"
)

func main() {
	code := cmd.Execute()
	os.Exit(code)
}
