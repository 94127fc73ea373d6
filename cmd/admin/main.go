package main

import (
	"fmt"
	"os"
	"strconv"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"obnavi/backend/internal/models"
	"obnavi/backend/internal/storage"
)

// Ops CLI for direct maintenance against the database. Redis is not
// touched; ban flags set here are picked up when the cache misses.
func main() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect database: %v\n", err)
		os.Exit(1)
	}

	store := storage.NewStorageService(db, nil)

	if len(os.Args) < 2 {
		usage()
	}

	switch os.Args[1] {
	case "ban":
		requireArgs(3, "admin ban <user_id>")
		must(store.SetBanned(os.Args[2], true))
		fmt.Printf("User %s has been banned.\n", os.Args[2])

	case "unban":
		requireArgs(3, "admin unban <user_id>")
		must(store.SetBanned(os.Args[2], false))
		fmt.Printf("User %s has been unbanned.\n", os.Args[2])

	case "grant-credits":
		requireArgs(4, "admin grant-credits <user_id> <amount>")
		amount, err := strconv.Atoi(os.Args[3])
		if err != nil || amount <= 0 {
			fmt.Println("Invalid amount. Please provide a positive integer.")
			os.Exit(1)
		}
		must(store.AddCredits(os.Args[2], amount))
		fmt.Printf("Granted %d credits to user %s.\n", amount, os.Args[2])

	case "approve-compliance":
		requireArgs(3, "admin approve-compliance <user_id>")
		profile, err := store.GetStudentProfile(os.Args[2])
		must(err)
		if profile == nil {
			fmt.Println("Student profile not found.")
			os.Exit(1)
		}
		profile.ComplianceStatus = models.ComplianceApproved
		must(store.SaveStudentProfile(profile))
		fmt.Printf("Compliance approved for user %s.\n", os.Args[2])

	default:
		usage()
	}
}

func usage() {
	fmt.Println("Usage: admin <ban|unban|grant-credits|approve-compliance> [args]")
	os.Exit(1)
}

func requireArgs(n int, usageLine string) {
	if len(os.Args) < n {
		fmt.Println("Usage: " + usageLine)
		os.Exit(1)
	}
}

func must(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
