package main

import (
	"log"
	"os"
	"time"

	"health-connect/configuration"
	"health-connect/controllers"
	"health-connect/notifications"
	"health-connect/routes"
	"health-connect/scheduling"
	"health-connect/seed"
)

func Init() {
	configuration.ConfigDB()
	configuration.InitRedis()
}

func main() {
	//Perform application initialization
	Init()

	seedPath := os.Getenv("SEED_FILE")
	if seedPath == "" {
		seedPath = "seed/doctors.json"
	}
	doctors, err := seed.Load(seedPath)
	if err != nil {
		log.Fatal("Error loading doctor catalog: ", err)
	}
	if err := seed.Apply(configuration.DB, doctors); err != nil {
		log.Fatal("Error seeding doctor catalog: ", err)
	}

	catalog := scheduling.NewGormCatalog(configuration.DB)
	patients := scheduling.NewGormPatients(configuration.DB)
	store := scheduling.NewGormStore(configuration.DB)

	var notifier scheduling.Notifier = scheduling.NopNotifier{}
	if mailer := notifications.MailerFromEnv(patients, catalog); mailer != nil {
		notifier = mailer
	} else {
		log.Println("EMAIL not set, booking mails disabled")
	}

	booking := scheduling.NewBookingService(store, patients, notifier)
	projections := scheduling.NewViewProjections(store, catalog)
	cache := scheduling.NewSlotCache(configuration.Client, 5*time.Minute)

	ctl := controllers.New(booking, store, catalog, patients, projections, cache)
	r := routes.SetupRoutes(ctl)

	//Run the engine in default port
	if err := r.Run(); err != nil {
		panic(err)
	}
}
