package main

import (
	"log"

	"github.com/EdoardoCotto/polito-se2-participium-sub000/internal/config"
	"github.com/EdoardoCotto/polito-se2-participium-sub000/internal/database"
	"github.com/EdoardoCotto/polito-se2-participium-sub000/internal/models"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type seedUser struct {
	Username  string
	Email     string
	Password  string
	FirstName string
	LastName  string
	UserType  models.UserType
	Roles     []string
}

var seedUsers = []seedUser{
	{
		Username: "admin", Email: "admin@participium.local", Password: "admin123",
		FirstName: "Ada", LastName: "Admin", UserType: models.UserTypeAdmin,
	},
	{
		Username: "pr.officer", Email: "pr@participium.local", Password: "officer123",
		FirstName: "Paola", LastName: "Rossi", UserType: models.UserTypeMunicipality,
		Roles: []string{string(models.RolePublicRelations)},
	},
	{
		Username: "urban.one", Email: "urban1@participium.local", Password: "officer123",
		FirstName: "Ugo", LastName: "Bianchi", UserType: models.UserTypeMunicipality,
		Roles: []string{string(models.RoleUrbanPlanner)},
	},
	{
		Username: "works.one", Email: "works1@participium.local", Password: "officer123",
		FirstName: "Walter", LastName: "Verdi", UserType: models.UserTypeMunicipality,
		Roles: []string{string(models.RolePublicWorks), string(models.RoleMobility)},
	},
	{
		Username: "maintainer.one", Email: "maintainer1@participium.local", Password: "maintainer123",
		FirstName: "Marco", LastName: "Neri", UserType: models.UserTypeMunicipality,
		Roles: []string{string(models.RoleExternalMaintainer)},
	},
	{
		Username: "citizen.one", Email: "citizen1@participium.local", Password: "citizen123",
		FirstName: "Carla", LastName: "Gallo", UserType: models.UserTypeCitizen,
	},
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	for _, s := range seedUsers {
		if err := createUser(db, s); err != nil {
			log.Printf("Error creating user %s: %v", s.Email, err)
		}
	}

	log.Println("Database seeding completed")
}

func createUser(db *gorm.DB, s seedUser) error {
	var existing models.User
	if err := db.Where("email = ?", s.Email).First(&existing).Error; err == nil {
		log.Printf("User already exists: %s", s.Email)
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(s.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := models.User{
		Username:           s.Username,
		Email:              s.Email,
		Password:           string(hashed),
		FirstName:          s.FirstName,
		LastName:           s.LastName,
		UserType:           s.UserType,
		Roles:              s.Roles,
		EmailNotifications: true,
	}
	if err := db.Create(&user).Error; err != nil {
		return err
	}

	log.Printf("Created user: %s (%s)", user.Email, user.UserType)
	return nil
}
