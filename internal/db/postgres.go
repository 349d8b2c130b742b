package db

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/gangamma-trust/registration-portal/internal/logger"
	"github.com/gangamma-trust/registration-portal/internal/types"
)

type PostgresService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPostgresService(dsn string, logg *logger.Logger) (*PostgresService, error) {
	serviceLog := logg.With("service", "PostgresService")

	gormLog := gormLogger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		gormLogger.Config{
			SlowThreshold:             1 * time.Second,
			LogLevel:                  gormLogger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLog,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Postgres: %w", err)
	}

	return &PostgresService{db: db, log: serviceLog}, nil
}

// AutoMigrate ensures the users table exists with the deployed variant's
// column set. The two variants are mutually exclusive shapes of the same
// table, so only the active one is migrated.
func (s *PostgresService) AutoMigrate(variant types.Variant) error {
	var model any
	switch variant {
	case types.VariantMembership:
		model = &types.Member{}
	default:
		model = &types.Donor{}
	}
	if err := s.db.AutoMigrate(model); err != nil {
		return fmt.Errorf("postgres automigrate: %w", err)
	}
	s.log.Info("Users table migrated", "variant", string(variant))
	return nil
}

func (s *PostgresService) DB() *gorm.DB { return s.db }
