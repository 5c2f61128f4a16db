package main

import (
	"flag"
	"log"

	"eventhorizon/internal/validation"
)

func main() {
	var baseURL string
	flag.StringVar(&baseURL, "url", "http://localhost:8080", "Base URL for API validation")
	flag.Parse()

	log.Printf("Starting API validation against: %s", baseURL)

	validator := validation.NewAPIValidator(baseURL)
	if err := validator.ValidateAll(); err != nil {
		log.Fatalf("❌ Проверка не пройдена: %v", err)
	}

	log.Println("✅ Проверка успешно пройдена!")
}
