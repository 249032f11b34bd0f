package configuration

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"health-connect/models"
)

// hold connection to db
var DB *gorm.DB

// initializing db connection
func ConfigDB() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, relying on environment")
	}
	dsn := os.Getenv("DB")
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("Failed to connect to the database")
	}

	DB.AutoMigrate(
		&models.Doctor{},
		&models.DoctorSlot{},
		&models.Patient{},
		&models.Appointment{},
	)
}
