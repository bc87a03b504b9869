package main

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"

	"taxibook/internal/config"
	"taxibook/internal/database"
	"taxibook/internal/domain"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("Migrate failed:", err)
	}

	// Cleanup old data (bookings first, foreign keys)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM bookings")
	db.Exec("DELETE FROM drivers")
	db.Exec("DELETE FROM taxis")
	db.Exec("DELETE FROM customers")

	log.Println("Creating taxis and drivers...")
	fleet := []struct {
		model    string
		capacity int
		driver   string
		phone    string
	}{
		{"Toyota Camry", 4, "Aidar Seitkali", "+7 701 111 2233"},
		{"Hyundai Sonata", 4, "Bekzat Omarov", "+7 702 222 3344"},
		{"Kia Carnival", 7, "Yerlan Tulegenov", "+7 705 333 4455"},
		{"Chevrolet Cobalt", 4, "Dulat Akhmetov", "+7 707 444 5566"},
	}
	for _, f := range fleet {
		t := domain.Taxi{
			Model:    f.model,
			Capacity: f.capacity,
			Status:   domain.TaxiAvailable,
		}
		if err := db.Create(&t).Error; err != nil {
			log.Fatal("taxi insert failed:", err)
		}
		d := domain.Driver{Name: f.driver, Phone: f.phone, TaxiID: t.ID}
		if err := db.Create(&d).Error; err != nil {
			log.Fatal("driver insert failed:", err)
		}
	}

	log.Println("Creating demo customers...")
	emails := []string{"asel@mail.kz", "bekzat@gmail.com", "dina@yandex.kz"}
	for i, email := range emails {
		hash, _ := bcrypt.GenerateFromPassword([]byte("client123"), bcrypt.DefaultCost)
		customer := domain.Customer{
			Name:         fmt.Sprintf("Customer %d", i+1),
			Phone:        fmt.Sprintf("+7 777 123 45%02d", i+67),
			Email:        email,
			PasswordHash: string(hash),
		}
		if err := db.Create(&customer).Error; err != nil {
			log.Fatal("customer insert failed:", err)
		}
		log.Printf("Customer created: %s / client123", email)
	}

	log.Println("Seed complete")
}
