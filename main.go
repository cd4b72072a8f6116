package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"

	"Imperyo/Config"
	"Imperyo/CronJobs"
	"Imperyo/FiberConfig"
	"Imperyo/Models"
	"Imperyo/Store"
	"Imperyo/Telegram"
)

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using process environment")
	}
	settings := Config.Load("settings.json5")

	ctx := context.Background()
	client, err := Store.Connect(ctx)
	if err != nil {
		log.Fatal("Failed to connect to the store:", err)
	}
	defer client.Close()

	gateway := Store.NewGateway(client)
	state, err := gateway.LoadAll(ctx)
	if err != nil {
		log.Fatal("Failed to load collections:", err)
	}
	if len(state.Lists.Products) == 0 && len(state.Lists.Fabrics) == 0 {
		// Fresh deployment: seed the selectors from the settings file.
		state.Lists = settings.DefaultLists
		if err := gateway.SaveLists(ctx, state.Lists); err != nil {
			log.Println("Could not seed catalogue lists:", err)
		}
	}
	log.Printf("Loaded %d orders, %d expenses, %d prospects",
		len(state.Orders), len(state.Expenses), len(state.Prospects))

	commands := &Models.Commands{
		State:    state,
		Store:    gateway,
		Notifier: notifierOrNil(),
	}

	backupScheduler := CronJobs.NewBackupScheduler(state, settings.BackupDir, settings.BackupSchedule, false)
	if err := backupScheduler.Start(); err != nil {
		log.Println("Failed to start backup scheduler:", err)
	}
	defer backupScheduler.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	FiberConfig.FiberConfig(FiberConfig.Deps{
		State:     state,
		Gateway:   gateway,
		Commands:  commands,
		BackupDir: settings.BackupDir,
	}, port)
}

// notifierOrNil keeps the notification hook optional: without credentials
// orders are simply created silently.
func notifierOrNil() Models.Notifier {
	client := Telegram.FromEnv()
	if client == nil {
		log.Println("Telegram credentials not set, notifications disabled")
		return nil
	}
	return client
}
