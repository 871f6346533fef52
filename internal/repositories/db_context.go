package repositories

import (
	"fmt"

	"github.com/0xLLM73/job-scraper/internal/entities"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DbContext struct {
	DB *gorm.DB
}

func NewDbContext(connectionString string) (*DbContext, error) {
	db, err := gorm.Open(sqlite.Open(connectionString), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}

	return &DbContext{DB: db}, nil
}

func (c *DbContext) Migrate() error {
	err := c.DB.AutoMigrate(entities.JobPosting{})
	if err != nil {
		return fmt.Errorf("failed to migrate JobPosting entity: %w", err)
	}

	err = c.DB.AutoMigrate(entities.ApplicationForm{})
	if err != nil {
		return fmt.Errorf("failed to migrate ApplicationForm entity: %w", err)
	}

	err = c.DB.AutoMigrate(entities.FormField{})
	if err != nil {
		return fmt.Errorf("failed to migrate FormField entity: %w", err)
	}

	err = c.DB.AutoMigrate(entities.CompetencyQuestion{})
	if err != nil {
		return fmt.Errorf("failed to migrate CompetencyQuestion entity: %w", err)
	}

	err = c.DB.AutoMigrate(entities.JobInteraction{})
	if err != nil {
		return fmt.Errorf("failed to migrate JobInteraction entity: %w", err)
	}

	return nil
}

func (c *DbContext) Close() error {
	db, err := c.DB.DB()
	if err != nil {
		return err
	}

	return db.Close()
}
