package main

import (
	"log"

	"guzo_backend/internal/app"

	"github.com/joho/godotenv"
)

func main() {
	// .env опционален: в проде всё приходит из окружения.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	app.Run()
}
