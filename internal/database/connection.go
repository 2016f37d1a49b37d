package database

import (
	"fmt"
	"time"

	"github.com/thereayou/colabnow/internal/config"
	"github.com/thereayou/colabnow/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// GormConfig - общие настройки gorm для всех драйверов
func GormConfig() *gorm.Config {
	return &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func Connect(cfg *config.Config) (*Database, error) {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.Database.URL)
	case "sqlite":
		dialector = sqlite.Open(cfg.Database.URL)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	db, err := gorm.Open(dialector, GormConfig())
	if err != nil {
		return nil, err
	}

	d := NewDatabase(db)
	if err := d.Migrate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Migrate регистрирует join-модели и создает схему
func (d *Database) Migrate() error {
	joins := []struct {
		field string
		model interface{}
	}{
		{"Tags", &models.ListingTagLink{}},
		{"Members", &models.ListingMember{}},
		{"Interested", &models.ListingInterest{}},
	}
	for _, j := range joins {
		if err := d.db.SetupJoinTable(&models.Listing{}, j.field, j.model); err != nil {
			return fmt.Errorf("setup join table %s: %w", j.field, err)
		}
	}

	return d.db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.Listing{},
		&models.ListingTagLink{},
		&models.ListingMember{},
		&models.ListingInterest{},
		&models.Message{},
		&models.Notification{},
	)
}
