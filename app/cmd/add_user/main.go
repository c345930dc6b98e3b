package main

import (
	"flag"
	"fmt"

	"github.com/DurgaPydahSoft/server-sub001/app/config"
	"github.com/DurgaPydahSoft/server-sub001/app/database"
	"github.com/DurgaPydahSoft/server-sub001/app/models"
)

func main() {
	firstName := flag.String("first-name", "", "User first name")
	lastName := flag.String("last-name", "", "User last name")
	email := flag.String("email", "", "User email (login)")
	password := flag.String("password", "", "Initial password")
	role := flag.String("role", "admin", "Role to assign")
	flag.Parse()

	if *email == "" || *password == "" {
		fmt.Println("Usage: add_user -email <email> -password <password> [-first-name ...] [-last-name ...] [-role admin]")
		return
	}

	config.InitDB()
	db := config.GetDB()
	if db == nil {
		fmt.Println("Failed to connect to database")
		return
	}
	defer db.Close()

	user := &models.User{
		FirstName: *firstName,
		LastName:  *lastName,
		Email:     *email,
		Password:  *password,
	}

	if err := database.CreateUser(db, user, *role); err != nil {
		fmt.Printf("Error creating user: %v\n", err)
		return
	}

	fmt.Printf("User created successfully: %s %s (%s) with role %s\n",
		user.FirstName, user.LastName, user.Email, *role)
}
