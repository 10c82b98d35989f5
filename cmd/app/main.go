package main

import (
	"os"

	"github.com/nikicasio/traffic-alert-app/cmd"
)

func main() {
	if err := cmd.Run(); err != nil {
		os.Exit(1)
	}
}
