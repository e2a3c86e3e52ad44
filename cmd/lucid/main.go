package main

import (
	"os"

	"horse.fit/lucid/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
