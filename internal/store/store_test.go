// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"smartblog/internal/database"
	"smartblog/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "smartblog")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "smartblog")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := testDSN()
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	// Run migrations to ensure the schema is current.
	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testLanguage creates a throwaway language with a unique code. The row is
// removed in cleanup, after the posts referencing it are gone.
func testLanguage(t *testing.T, db *sql.DB) *models.Language {
	t.Helper()

	code := "t" + uuid.NewString()[:7]
	lang, err := NewLanguageStore(db).Create(context.Background(), &models.Language{
		Code: code,
		Name: "Test " + code,
	})
	if err != nil {
		t.Fatalf("create test language: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM languages WHERE id = $1", lang.ID) })
	return lang
}

// testPost creates a post with the given publication state plus one
// translation in lang. Deleting the post cascades the translation, any
// comments, and any category links.
func testPost(t *testing.T, db *sql.DB, lang *models.Language, postedAt *time.Time, published bool) (*models.Post, *models.PostTranslation) {
	t.Helper()
	ctx := context.Background()

	post, err := NewPostStore(db).Create(ctx, &models.Post{
		PostedAt:    postedAt,
		IsPublished: published,
	})
	if err != nil {
		t.Fatalf("create test post: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM posts WHERE id = $1", post.ID) })

	title := "Test Post " + uuid.NewString()[:8]
	tr, err := NewTranslationStore(db).Create(ctx, &models.PostTranslation{
		PostID: post.ID,
		LangID: lang.ID,
		Title:  title,
		Body:   "Body of " + title,
	})
	if err != nil {
		t.Fatalf("create test translation: %v", err)
	}
	return post, tr
}

// testCategory creates a category with a unique slug under an optional parent.
func testCategory(t *testing.T, db *sql.DB, name string, parentID *uuid.UUID) *models.Category {
	t.Helper()

	cat, err := NewCategoryStore(db).Create(context.Background(), &models.Category{
		Name:     name,
		Slug:     "test-" + uuid.NewString()[:8],
		ParentID: parentID,
	})
	if err != nil {
		t.Fatalf("create test category: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM categories WHERE id = $1", cat.ID) })
	return cat
}

// cleanUsers removes test users by email. Call in t.Cleanup().
func cleanUsers(t *testing.T, db *sql.DB, emails ...string) {
	t.Helper()
	for _, email := range emails {
		db.Exec("DELETE FROM users WHERE email = $1", email)
	}
}

func past() *time.Time {
	ts := time.Now().Add(-time.Hour)
	return &ts
}

func future() *time.Time {
	ts := time.Now().Add(time.Hour)
	return &ts
}
