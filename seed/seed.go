// Package seed populates the database with development data.
package seed

import (
	"fmt"
	"log"
	"strings"
	"time"

	"devconnect/gravatar"
	"devconnect/models"
	"devconnect/validation"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	userCount = 10
	postCount = 8
)

var statuses = []string{
	"Developer", "Senior Developer", "Student or Learning", "Instructor", "Junior Developer",
}

var skillPool = []string{
	"JavaScript", "React", "Node", "Go", "Postgres", "Redis",
	"Python", "Django", "AWS", "HTML", "CSS", "Java", "Spring", "Kubernetes",
}

// skillsCSV picks a handful of distinct skills as the comma-separated string
// the profile form would submit.
func skillsCSV() string {
	want := gofakeit.Number(3, 5)
	picked := make([]string, 0, want)
	seen := make(map[string]bool, want)
	for len(picked) < want {
		s := gofakeit.RandomString(skillPool)
		if !seen[s] {
			seen[s] = true
			picked = append(picked, s)
		}
	}
	return strings.Join(picked, ", ")
}

// Run inserts demo users, profiles and posts. Emails are stable across runs,
// so reseeding never duplicates accounts; posts are only created on an empty
// feed.
func Run(db *gorm.DB) error {
	gofakeit.Seed(time.Now().UnixNano())

	password, err := bcrypt.GenerateFromPassword([]byte("secret123"), 10)
	if err != nil {
		return err
	}

	var users []models.User
	for i := 0; i < userCount; i++ {
		email := fmt.Sprintf("user%d@devconnect.dev", i+1)

		var existing models.User
		if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
			users = append(users, existing)
			continue
		}

		user := models.User{
			Name:     gofakeit.Name(),
			Email:    email,
			Password: string(password),
			Avatar:   gravatar.URL(email),
		}
		if err := db.Create(&user).Error; err != nil {
			return fmt.Errorf("seeding user %s: %w", email, err)
		}
		users = append(users, user)

		profile := models.Profile{
			UserID:   user.ID,
			Status:   statuses[i%len(statuses)],
			Bio:      gofakeit.Sentence(12),
			Company:  gofakeit.Company(),
			Location: gofakeit.City(),
			Website:  gofakeit.URL(),
			Skills:   validation.SplitSkills(skillsCSV()),
		}
		if err := db.Create(&profile).Error; err != nil {
			return fmt.Errorf("seeding profile for %s: %w", email, err)
		}

		from := gofakeit.DateRange(time.Now().AddDate(-5, 0, 0), time.Now().AddDate(-1, 0, 0))
		exp := models.Experience{
			ProfileID:   profile.ID,
			Title:       gofakeit.JobTitle(),
			Company:     profile.Company,
			Location:    profile.Location,
			From:        from,
			Current:     true,
			Description: gofakeit.Sentence(8),
		}
		if err := db.Create(&exp).Error; err != nil {
			return fmt.Errorf("seeding experience for %s: %w", email, err)
		}
	}

	var existingPosts int64
	if err := db.Model(&models.Post{}).Count(&existingPosts).Error; err != nil {
		return err
	}
	if existingPosts == 0 {
		for i := 0; i < postCount; i++ {
			author := users[gofakeit.Number(0, len(users)-1)]
			post := models.Post{
				Text:   gofakeit.Paragraph(1, 2, 8, " "),
				Name:   author.Name,
				Avatar: author.Avatar,
				UserID: author.ID,
			}
			if err := db.Create(&post).Error; err != nil {
				return fmt.Errorf("seeding post %d: %w", i, err)
			}
		}
	}

	log.Printf("Seeded %d users with profiles and %d posts", len(users), postCount)
	return nil
}
