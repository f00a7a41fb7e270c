package main

import (
	"github.com/joho/godotenv"

	"ascend/internal/app/server"
)

func main() {
	// A missing .env is fine; environment variables win either way.
	_ = godotenv.Load()

	server.Run()
}
