package db

import (
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lqitha/lqitha-backend/config"
	"github.com/lqitha/lqitha-backend/models"
)

type GormDB struct {
	DB *gorm.DB
}

func GetDB(c *config.Config) *GormDB {
	gormDB := &GormDB{}
	gormDB.Init(c)
	return gormDB
}

func (g *GormDB) Init(c *config.Config) {
	g.DB = getPostgresDB(c)

	if err := migrate(g.DB); err != nil {
		log.Fatalf("unable to run migrations: %v", err)
	}
}

func getPostgresDB(c *config.Config) *gorm.DB {
	postgresDSN := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d",
		c.PostgresHost, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresPort)

	gormConfig := &gorm.Config{}
	if c.Env != "prod" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	}
	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		DSN: postgresDSN,
	}), gormConfig)
	if err != nil {
		log.Fatal(err)
	}

	return gormDB
}

func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.TrustPointTransaction{},
		&models.Notification{},
		&models.ContactUnlock{},
	)
	if err != nil {
		return fmt.Errorf("migrations error: %v", err)
	}

	// found_posts and lost_posts share the Post shape but live in separate tables
	for _, kind := range []models.PostKind{models.PostKindFound, models.PostKindLost} {
		if err := db.Table(kind.TableName()).AutoMigrate(&models.Post{}); err != nil {
			return fmt.Errorf("migrations error for %s: %v", kind.TableName(), err)
		}
	}

	return nil
}

// SeedAdmin creates the default admin account if no admin exists yet.
func SeedAdmin(db *gorm.DB, email, password string) error {
	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Username:       "System Admin",
		Email:          email,
		HashedPassword: string(hashed),
		Role:           models.RoleAdmin,
		Points:         0,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("seeding admin error: %v", err)
	}
	log.Printf("seeded admin user %s", email)
	return nil
}
