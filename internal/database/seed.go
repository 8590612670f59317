package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a default
// admin user, the default language, and a small category tree with one
// published post so the public pages have something to show.
func Seed(db *sql.DB) error {
	// Check if any users exist already.
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	// Hash the default admin password.
	hash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	var adminID string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash, display_name, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, "admin@smartblog.local", string(hash), "Admin", "admin").Scan(&adminID)
	if err != nil {
		return fmt.Errorf("seed insert admin: %w", err)
	}

	var langID string
	err = db.QueryRow(`
		INSERT INTO languages (code, name, is_default)
		VALUES ('en', 'English', TRUE)
		RETURNING id
	`).Scan(&langID)
	if err != nil {
		return fmt.Errorf("seed insert language: %w", err)
	}

	// A two-level category tree: General -> Announcements.
	var generalID string
	err = db.QueryRow(`
		INSERT INTO categories (name, slug, description)
		VALUES ('General', 'general', 'Everything else')
		RETURNING id
	`).Scan(&generalID)
	if err != nil {
		return fmt.Errorf("seed insert category: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO categories (name, slug, description, parent_id)
		VALUES ('Announcements', 'announcements', 'Site news', $1)
	`, generalID)
	if err != nil {
		return fmt.Errorf("seed insert child category: %w", err)
	}

	var postID string
	err = db.QueryRow(`
		INSERT INTO posts (user_id, posted_at, is_published)
		VALUES ($1, $2, TRUE)
		RETURNING id
	`, adminID, time.Now().Add(-time.Hour)).Scan(&postID)
	if err != nil {
		return fmt.Errorf("seed insert post: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO post_categories (post_id, category_id)
		VALUES ($1, $2)
	`, postID, generalID)
	if err != nil {
		return fmt.Errorf("seed link post category: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO post_translations (post_id, lang_id, slug, title, body)
		VALUES ($1, $2, 'welcome-to-smartblog', 'Welcome to SmartBlog',
		        'This is your first post. Write something in **Markdown**.')
	`, postID, langID)
	if err != nil {
		return fmt.Errorf("seed insert translation: %w", err)
	}

	slog.Info("database seeded with default admin user",
		"email", "admin@smartblog.local",
		"password", "admin",
	)

	return nil
}
