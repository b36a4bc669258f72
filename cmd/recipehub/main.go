package main

import (
	"fmt"
	"os"

	"github.com/DibuBaj/Backend/cmd/internal/app"
)

func main() {
	if err := app.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "recipehub:", err)
		os.Exit(1)
	}
}
