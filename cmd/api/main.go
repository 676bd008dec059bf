package main

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"

	"photoshare/internal/config"
	"photoshare/internal/database"
	"photoshare/internal/domain/audit"
	"photoshare/internal/domain/auth"
	"photoshare/internal/domain/friendship"
	"photoshare/internal/domain/gallery"
	"photoshare/internal/domain/message"
	"photoshare/internal/domain/profile"
	"photoshare/internal/domain/share"
	"photoshare/internal/imaging"
	"photoshare/internal/mailer"
	"photoshare/internal/middleware"
	jwtsvc "photoshare/internal/pkg/jwt"
	"photoshare/internal/storage"
)

func main() {
	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}

	var blobs storage.Storage
	if cfg.MinioEndpoint != "" {
		m, err := storage.NewMinIO(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
		if err != nil {
			log.Fatal(err)
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

	j := jwtsvc.New(cfg.JWTSecret, 24*time.Hour)

	auditRepo := audit.NewRepository(db)
	auditRec := audit.NewRecorder(auditRepo)
	auditHandler := audit.NewHandler(auditRepo)

	profileService := profile.NewService(profile.NewRepository(db), blobs, imaging.NewNormalizer(), auditRec)
	profileHandler := profile.NewHandler(profileService)

	authService := auth.NewService(auth.NewRepository(db), profileService, j)
	authHandler := auth.NewHandler(authService)

	friendService := friendship.NewService(friendship.NewRepository(db), profileService)
	friendHandler := friendship.NewHandler(friendService)

	galleryService := gallery.NewService(gallery.NewRepository(db), blobs, imaging.NewNormalizer(), profileService, auditRec)
	galleryHandler := gallery.NewHandler(galleryService)

	messageService := message.NewService(message.NewRepository(db), friendService)
	messageHandler := message.NewHandler(messageService)

	shareService := share.NewService(share.NewRepository(db), blobs, mail, authService, cfg.BaseURL)
	shareHandler := share.NewHandler(shareService)

	r := gin.New()
	r.Use(gin.Recovery(), middleware.ErrorLogger(), middleware.CORS())

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterRoutes(v1)

		public := v1.Group("/")
		public.Use(middleware.OptionalAuth(j))
		{
			galleryHandler.RegisterPublicRoutes(public)
			profileHandler.RegisterPublicRoutes(public)
		}

		shareHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			profileHandler.RegisterRoutes(protected)
			friendHandler.RegisterRoutes(protected)
			galleryHandler.RegisterRoutes(protected)
			messageHandler.RegisterRoutes(protected)
			shareHandler.RegisterRoutes(protected)
		}

		staff := v1.Group("/")
		staff.Use(middleware.Auth(j), middleware.StaffOnly())
		{
			profileHandler.RegisterAdminRoutes(staff)
			galleryHandler.RegisterAdminRoutes(staff)
			auditHandler.RegisterAdminRoutes(staff)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
