package main

import (
	"context"
	"log"
	"time"

	"photoshare/internal/config"
	"photoshare/internal/database"
	"photoshare/internal/domain/auth"
	"photoshare/internal/domain/share"
	"photoshare/internal/mailer"
	"photoshare/internal/storage"
)

type ownerEmails struct {
	users auth.Repository
}

func (o ownerEmails) EmailByUserID(ctx context.Context, userID int64) (string, error) {
	u, err := o.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return u.Email, nil
}

// Runs one transfer-sweep pass and exits; schedule it with cron or a
// systemd timer. Safe to run at any frequency, including while the API
// serves traffic.
func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}

	var blobs storage.Storage
	if cfg.MinioEndpoint != "" {
		m, err := storage.NewMinIO(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			log.Fatalf("storage init failed: %v", err)
		}
		blobs = m
	} else {
		blobs = storage.NewDisk(cfg.UploadsDir)
	}

	var mail mailer.Mailer
	if cfg.ResendAPIKey != "" {
		mail = mailer.NewResend(cfg.ResendAPIKey, cfg.FromEmail)
	} else {
		mail = mailer.NewLogMailer()
	}

	svc := share.NewService(share.NewRepository(db), blobs, mail, ownerEmails{users: auth.NewRepository(db)}, cfg.BaseURL)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	res, err := svc.Sweep(ctx, time.Now())
	if err != nil {
		log.Fatalf("sweep failed: %v", err)
	}
	log.Printf("sweep completed: warned=%d deleted=%d", res.Warned, res.Deleted)
}
