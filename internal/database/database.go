package database

import (
	"log"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite" // registers the cgo-free "sqlite" database/sql driver

	"photoshare/internal/domain/audit"
	"photoshare/internal/domain/auth"
	"photoshare/internal/domain/friendship"
	"photoshare/internal/domain/gallery"
	"photoshare/internal/domain/message"
	"photoshare/internal/domain/profile"
	"photoshare/internal/domain/share"
)

func Connect(dsn string) (*gorm.DB, error) {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		log.Println("Connecting to PostgreSQL...")
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}

	log.Println("Using SQLite for local development:", dsn)

	return gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        dsn,
		}),
		&gorm.Config{},
	)
}

// Migrate creates or updates the schema for every domain entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&auth.User{},
		&profile.Profile{},
		&profile.DobChangeRequest{},
		&friendship.FriendRequest{},
		&friendship.Friendship{},
		&gallery.Category{},
		&gallery.Photo{},
		&gallery.PhotoFriend{},
		&gallery.Like{},
		&gallery.Comment{},
		&message.Message{},
		&audit.Entry{},
		&share.Transfer{},
		&share.TransferFile{},
	)
}
