package storage

import (
	"errors"
	"os"
	"sync"

	"flowboard-backend/internal/config"
	"flowboard-backend/internal/util/logger"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gorm_logger "gorm.io/gorm/logger"
)

var log = logger.GetLogger()

var (
	db   *gorm.DB
	once sync.Once

	registeredModels []any
)

// RegisterModels adds models to the set migrated automatically when the
// test database is created. Called from model package init functions,
// before the first GetDb call.
func RegisterModels(models ...any) {
	registeredModels = append(registeredModels, models...)
}

func GetDb() *gorm.DB {
	once.Do(connect)
	return db
}

func connect() {
	var err error

	gormConfig := &gorm.Config{
		// unique violations surface as gorm.ErrDuplicatedKey on
		// both drivers
		TranslateError: true,
		Logger:         gorm_logger.Default.LogMode(gorm_logger.Silent),
	}

	if config.GetEnv().IsTesting {
		// in-memory database shared across connections within the
		// test process
		db, err = gorm.Open(
			sqlite.Open("file::memory:?cache=shared"),
			gormConfig,
		)
		if err != nil {
			log.Error("Failed to open test database", "error", err)
			os.Exit(1)
		}

		if err := db.AutoMigrate(registeredModels...); err != nil {
			log.Error("Failed to migrate test database", "error", err)
			os.Exit(1)
		}

		return
	}

	db, err = gorm.Open(postgres.Open(config.GetEnv().DatabaseDsn), gormConfig)
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
}

// IsUniqueViolation reports whether err came from a uniqueness constraint.
func IsUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}
