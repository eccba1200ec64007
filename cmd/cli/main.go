package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Lakshit1111/SurdarshanSarees/internal/models"
	"github.com/Lakshit1111/SurdarshanSarees/internal/store"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	addAdminCmd := flag.NewFlagSet("add-admin", flag.ExitOnError)
	username := addAdminCmd.String("username", "", "Username for the new admin")
	password := addAdminCmd.String("password", "", "Password for the new admin")
	name := addAdminCmd.String("name", "", "Display name (optional)")
	email := addAdminCmd.String("email", "", "Email (optional)")

	if len(os.Args) < 2 {
		fmt.Println("expected 'add-admin' subcommand")
		os.Exit(1)
	}

	switch os.Args[1] {
	case "add-admin":
		addAdminCmd.Parse(os.Args[2:])
		if *username == "" || *password == "" {
			fmt.Println("username and password are required")
			addAdminCmd.PrintDefaults()
			os.Exit(1)
		}
		createAdmin(*username, *password, *name, *email)
	default:
		fmt.Println("expected 'add-admin' subcommand")
		os.Exit(1)
	}
}

func createAdmin(username, password, name, email string) {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./sarees.db"
	}

	db, err := store.Open(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user, err := db.CreateUser(context.Background(), models.User{
		Username: username,
		Password: string(hashedPassword),
		Name:     name,
		Email:    email,
		IsAdmin:  true,
	})
	if err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}

	fmt.Printf("Admin '%s' created successfully (id %d).\n", user.Username, user.ID)
}
