package initializers

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func LoadEnv() {
	if _, err := os.Stat(".env"); err != nil {
		log.Println("No .env file found, relying on process environment.")
		return
	}
	if err := godotenv.Load(); err != nil {
		log.Fatal("Error loading .env file:", err)
	}
}
