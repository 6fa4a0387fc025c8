package repositories

import (
	"fmt"

	"github.com/OBATA-VTU/oGig/internal/domain/models"
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
	err := c.DB.AutoMigrate(models.Job{})
	if err != nil {
		return fmt.Errorf("failed to migrate Job entity: %w", err)
	}

	err = c.DB.AutoMigrate(models.UserProfile{})
	if err != nil {
		return fmt.Errorf("failed to migrate UserProfile entity: %w", err)
	}

	err = c.DB.AutoMigrate(models.PortfolioItem{})
	if err != nil {
		return fmt.Errorf("failed to migrate PortfolioItem entity: %w", err)
	}

	err = c.DB.AutoMigrate(models.Credential{})
	if err != nil {
		return fmt.Errorf("failed to migrate Credential entity: %w", err)
	}

	if err = c.DB.Exec("CREATE INDEX IF NOT EXISTS idx_jobs_posted_at ON jobs (posted_at); " +
		"CREATE INDEX IF NOT EXISTS idx_jobs_creator_id ON jobs (creator_id);").
		Error; err != nil {
		return fmt.Errorf("failed to create job indexes: %w", err)
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
