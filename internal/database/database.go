package database

import (
	"log"
	"strings"

	"github.com/haleemairfan/ReminderBot/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultSQLitePath is used when no DATABASE_URL and no explicit path are given.
const DefaultSQLitePath = "reminders.db"

// New creates a GORM database connection and migrates the reminder schema.
// When databaseURL is provided PostgreSQL is used, otherwise SQLite at
// sqlitePath (DefaultSQLitePath when empty).
func New(databaseURL, sqlitePath string) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	if databaseURL != "" {
		db, err = gorm.Open(postgres.Open(databaseURL), gormConfig)
	} else {
		if sqlitePath == "" {
			sqlitePath = DefaultSQLitePath
		}
		db, err = gorm.Open(sqlite.Open(sqlitePath), gormConfig)
	}
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&model.Reminder{}); err != nil {
		return nil, err
	}

	logBackend(db, sqlitePath)
	return db, nil
}

func logBackend(db *gorm.DB, sqlitePath string) {
	dialector := db.Dialector.Name()
	switch strings.ToLower(dialector) {
	case "postgres":
		log.Printf("database: connected to PostgreSQL")
	case "sqlite":
		log.Printf("database: using SQLite at %s", sqlitePath)
	default:
		log.Printf("database: connected via %s", dialector)
	}
}
