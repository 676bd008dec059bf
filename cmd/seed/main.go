package main

import (
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"photoshare/internal/database"
	"photoshare/internal/domain/auth"
	"photoshare/internal/domain/friendship"
	"photoshare/internal/domain/gallery"
	"photoshare/internal/domain/profile"
)

func main() {
	db, err := database.Connect("photoshare.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (in safe order to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM likes")
	db.Exec("DELETE FROM comments")
	db.Exec("DELETE FROM photo_friends")
	db.Exec("DELETE FROM photos")
	db.Exec("DELETE FROM categories")
	db.Exec("DELETE FROM friendships")
	db.Exec("DELETE FROM friend_requests")
	db.Exec("DELETE FROM messages")
	db.Exec("DELETE FROM dob_change_requests")
	db.Exec("DELETE FROM profiles")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := auth.User{
		Username:     "admin",
		Email:        "admin@photoshare.local",
		PasswordHash: string(adminHash),
		IsStaff:      true,
	}
	db.Create(&admin)
	adminDob := time.Date(1985, 3, 12, 0, 0, 0, 0, time.UTC)
	db.Create(&profile.Profile{
		UserID:      admin.ID,
		DisplayName: "Admin",
		Role:        profile.RolePhotographer,
		DateOfBirth: &adminDob,
	})
	log.Println("Admin created: admin@photoshare.local / admin123")

	roles := []profile.Role{profile.RolePhotographer, profile.RoleModel, profile.RoleVisitor}
	var users []auth.User
	for i := 0; i < 3; i++ {
		hash, _ := bcrypt.GenerateFromPassword([]byte("user123"), bcrypt.DefaultCost)
		u := auth.User{
			Username:     fmt.Sprintf("user%d", i+1),
			Email:        fmt.Sprintf("user%d@photoshare.local", i+1),
			PasswordHash: string(hash),
		}
		db.Create(&u)
		dob := time.Date(1990+i, 6, 1, 0, 0, 0, 0, time.UTC)
		db.Create(&profile.Profile{
			UserID:      u.ID,
			DisplayName: fmt.Sprintf("User %d", i+1),
			Role:        roles[i],
			DateOfBirth: &dob,
		})
		users = append(users, u)
	}

	log.Println("Creating categories...")
	categories := []gallery.Category{
		{Name: "Portrait", Slug: gallery.Slugify("Portrait")},
		{Name: "Landscape", Slug: gallery.Slugify("Landscape")},
		{Name: "Boudoir", Slug: gallery.Slugify("Boudoir"), IsAdultOnly: true},
	}
	for i := range categories {
		db.Create(&categories[i])
	}

	log.Println("Creating friendships...")
	req := friendship.FriendRequest{
		FromUserID: users[0].ID,
		ToUserID:   users[1].ID,
		Status:     friendship.StatusAccepted,
	}
	db.Create(&req)
	var p0, p1 profile.Profile
	db.Where("user_id = ?", users[0].ID).First(&p0)
	db.Where("user_id = ?", users[1].ID).First(&p1)
	db.Create(&friendship.Friendship{ProfileID: p0.ID, FriendProfileID: p1.ID})
	db.Create(&friendship.Friendship{ProfileID: p1.ID, FriendProfileID: p0.ID})

	log.Println("Seed completed")
}
