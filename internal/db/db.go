package db

import (
	"log"
	"os"
	"yatube/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		// Fallback for local dev if not set
		dsn = "host=localhost user=postgres password=postgres dbname=yatube port=5432 sslmode=disable"
	}

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	if err := Migrate(DB); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	seedGroups(DB)
}

// Migrate runs AutoMigrate for every entity. Split out of Init so tests can
// run it against their own database handle.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
		&models.UserIp{},
	)
}

// seedGroups creates the initial groups. Groups are administrative and have
// no handler surface, so seeding is the only create path.
func seedGroups(db *gorm.DB) {
	var count int64
	db.Model(&models.Group{}).Count(&count)
	if count > 0 {
		log.Println("Groups already seeded, skipping")
		return
	}

	groups := []models.Group{
		{Title: "General", Slug: "general", Description: "Anything goes"},
		{Title: "Tech", Slug: "tech", Description: "Programming and tooling"},
		{Title: "Travel", Slug: "travel", Description: "Trip reports and photos"},
	}

	for _, group := range groups {
		if err := db.Create(&group).Error; err != nil {
			log.Printf("Failed to create group %s: %v", group.Slug, err)
		}
	}
	log.Println("Initial groups created")
}
