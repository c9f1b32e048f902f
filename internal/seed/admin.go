package seed

import (
	"log"
	"os"

	"tinfoil/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Admin creates the bootstrap superadmin account if it does not exist yet.
// The password comes from SEED_ADMIN_PASSWORD, with a development default.
func Admin(db *gorm.DB) error {
	var existing models.Admin
	err := db.Where("username = ?", "admin").First(&existing).Error
	if err == nil {
		log.Println("Admin user already exists")
		return nil
	}
	if err != gorm.ErrRecordNotFound {
		return err
	}

	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := models.Admin{
		Username: "admin",
		Email:    "admin@example.com",
		Password: string(hash),
		Role:     models.AdminRoleSuperadmin,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("Admin user created successfully")
	log.Printf("Username: %s Role: %s", admin.Username, admin.Role)
	return nil
}
