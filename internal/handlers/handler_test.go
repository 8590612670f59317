// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler integration
// tests. Tests are skipped when PostgreSQL or Valkey are unavailable.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"smartblog/internal/cache"
	"smartblog/internal/config"
	"smartblog/internal/database"
	"smartblog/internal/events"
	"smartblog/internal/middleware"
	"smartblog/internal/models"
	"smartblog/internal/search"
	"smartblog/internal/session"
	"smartblog/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "smartblog")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "smartblog")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testValkeyClient returns a Redis client for handler tests on DB 15.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15,
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		// Clean up test session and cache keys.
		for _, pattern := range []string{"session:*", "blog:*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

// recordingSubscriber counts comment-added events for assertions.
type recordingSubscriber struct {
	mu     sync.Mutex
	events []events.CommentAdded
}

func (r *recordingSubscriber) HandleCommentAdded(_ context.Context, ev events.CommentAdded) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

func (r *recordingSubscriber) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// testEnv holds all dependencies for handler integration tests.
type testEnv struct {
	DB           *sql.DB
	Valkey       *redis.Client
	Cfg          *config.Config
	Sessions     *session.Store
	Languages    *store.LanguageStore
	Categories   *store.CategoryStore
	Posts        *store.PostStore
	Translations *store.TranslationStore
	CommentStore *store.CommentStore
	PageCache    *cache.PageCache
	Events       *recordingSubscriber
	Reader       *Reader
	Comments     *Comments

	Lang *models.Language
}

// newTestEnv creates a complete test environment with all handler
// dependencies and one throwaway language for fixtures.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	vk := testValkeyClient(t)

	cfg := &config.Config{
		Comments: config.Comments{
			Type:        config.CommentsBuiltIn,
			SaveUserID:  true,
			AutoApprove: true,
		},
		SearchEnabled: true,
		PerPage:       10,
	}

	env := &testEnv{
		DB:           db,
		Valkey:       vk,
		Cfg:          cfg,
		Sessions:     session.NewStore(vk, false),
		Languages:    store.NewLanguageStore(db),
		Categories:   store.NewCategoryStore(db),
		Posts:        store.NewPostStore(db),
		Translations: store.NewTranslationStore(db),
		CommentStore: store.NewCommentStore(db),
		PageCache:    cache.NewPageCache(vk, time.Minute),
		Events:       &recordingSubscriber{},
	}

	dispatcher := events.NewDispatcher(env.Events)
	searcher := search.NewPostgresSearcher(db, 50)

	env.Reader = NewReader(cfg, env.Categories, env.Translations, env.CommentStore, searcher, nil, env.PageCache)
	env.Comments = NewComments(cfg, env.Translations, env.CommentStore, dispatcher, nil, env.PageCache)

	code := "t" + uuid.NewString()[:7]
	lang, err := env.Languages.Create(context.Background(), &models.Language{Code: code, Name: "Test " + code})
	if err != nil {
		t.Fatalf("create test language: %v", err)
	}
	t.Cleanup(func() { db.Exec("DELETE FROM languages WHERE id = $1", lang.ID) })
	env.Lang = lang

	return env
}

// newPost creates a post plus one translation in the env language.
func (env *testEnv) newPost(t *testing.T, postedAt *time.Time, published bool) (*models.Post, *models.PostTranslation) {
	t.Helper()
	ctx := context.Background()

	post, err := env.Posts.Create(ctx, &models.Post{PostedAt: postedAt, IsPublished: published})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	t.Cleanup(func() { env.DB.Exec("DELETE FROM posts WHERE id = $1", post.ID) })

	title := "Handler Test " + uuid.NewString()[:8]
	tr, err := env.Translations.Create(ctx, &models.PostTranslation{
		PostID: post.ID,
		LangID: env.Lang.ID,
		Title:  title,
		Body:   "# " + title,
	})
	if err != nil {
		t.Fatalf("create translation: %v", err)
	}
	return post, tr
}

// prepRequest injects the env language, an optional session, and chi URL
// params into a request, standing in for the middleware chain.
func (env *testEnv) prepRequest(r *http.Request, sess *session.Data, params map[string]string) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.LanguageKey, env.Lang)
	if sess != nil {
		ctx = context.WithValue(ctx, middleware.SessionKey, sess)
	}
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)
	return r.WithContext(ctx)
}

// editorSession returns session data holding the manage-posts capability.
func editorSession() *session.Data {
	return &session.Data{
		UserID:      uuid.New(),
		Email:       "editor@example.com",
		DisplayName: "Editor",
		Role:        models.RoleEditor,
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
