package main

import (
	"log"

	"github.com/MrSnakeDoc/learnwords/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("❌ learnwords failed to start: %v", err)
	}
}
