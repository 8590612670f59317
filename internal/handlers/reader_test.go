package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"smartblog/internal/models"
)

func TestReaderIndexVisibility(t *testing.T) {
	env := newTestEnv(t)

	visiblePost, _ := env.newPost(t, past(), true)
	scheduledPost, _ := env.newPost(t, future(), true)

	// Anonymous index: only the already-posted post shows up.
	w := httptest.NewRecorder()
	r := env.prepRequest(httptest.NewRequest("GET", "/blog/"+env.Lang.Code, nil), nil, nil)
	env.Reader.Index(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	var view IndexView
	if err := json.NewDecoder(w.Body).Decode(&view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.Locale != env.Lang.Code {
		t.Errorf("locale: got %q, want %q", view.Locale, env.Lang.Code)
	}
	seen := map[string]bool{}
	for _, item := range view.Posts.Items {
		seen[item.PostID.String()] = true
	}
	if !seen[visiblePost.ID.String()] {
		t.Error("visible post missing from anonymous index")
	}
	if seen[scheduledPost.ID.String()] {
		t.Error("scheduled post leaked into anonymous index")
	}

	// The same index as an editor includes the scheduled post.
	w = httptest.NewRecorder()
	r = env.prepRequest(httptest.NewRequest("GET", "/blog/"+env.Lang.Code, nil), editorSession(), nil)
	env.Reader.Index(w, r)

	view = IndexView{}
	if err := json.NewDecoder(w.Body).Decode(&view); err != nil {
		t.Fatalf("decode editor view: %v", err)
	}
	seen = map[string]bool{}
	for _, item := range view.Posts.Items {
		seen[item.PostID.String()] = true
	}
	if !seen[scheduledPost.ID.String()] {
		t.Error("scheduled post missing from editor preview")
	}
}

func TestReaderCategoryUnknownSlugIs404(t *testing.T) {
	env := newTestEnv(t)

	w := httptest.NewRecorder()
	r := env.prepRequest(httptest.NewRequest("GET", "/blog/"+env.Lang.Code+"/category/nope", nil),
		nil, map[string]string{"categorySlug": "does-not-exist"})
	env.Reader.Category(w, r)

	if w.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", w.Code)
	}
}

func TestReaderCategoryBreadcrumb(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	root, err := env.Categories.Create(ctx, &models.Category{Name: "Root", Slug: "bc-root-" + env.Lang.Code})
	if err != nil {
		t.Fatalf("create root: %v", err)
	}
	t.Cleanup(func() { env.DB.Exec("DELETE FROM categories WHERE id = $1", root.ID) })

	leaf, err := env.Categories.Create(ctx, &models.Category{Name: "Leaf", Slug: "bc-leaf-" + env.Lang.Code, ParentID: &root.ID})
	if err != nil {
		t.Fatalf("create leaf: %v", err)
	}
	t.Cleanup(func() { env.DB.Exec("DELETE FROM categories WHERE id = $1", leaf.ID) })

	post, _ := env.newPost(t, past(), true)
	if err := env.Posts.AssignCategory(ctx, post.ID, leaf.ID); err != nil {
		t.Fatalf("assign category: %v", err)
	}

	// Hierarchy URLs resolve by the LAST path segment only.
	w := httptest.NewRecorder()
	r := env.prepRequest(httptest.NewRequest("GET", "/blog/"+env.Lang.Code+"/category/anything/"+leaf.Slug, nil),
		nil, map[string]string{"*": "anything/" + leaf.Slug})
	env.Reader.CategoryHierarchy(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	var view IndexView
	if err := json.NewDecoder(w.Body).Decode(&view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(view.CategoryChain) != 2 {
		t.Fatalf("breadcrumb length: got %d, want 2", len(view.CategoryChain))
	}
	if view.CategoryChain[0].ID != root.ID || view.CategoryChain[1].ID != leaf.ID {
		t.Error("breadcrumb not ordered root to leaf")
	}
	if !strings.Contains(view.Title, "Leaf") {
		t.Errorf("title: got %q, want the category name in it", view.Title)
	}
	if view.Posts.Total != 1 {
		t.Errorf("category post total: got %d, want 1", view.Posts.Total)
	}
}

func TestReaderShow(t *testing.T) {
	env := newTestEnv(t)

	_, tr := env.newPost(t, past(), true)

	w := httptest.NewRecorder()
	r := env.prepRequest(httptest.NewRequest("GET", "/blog/"+env.Lang.Code+"/"+tr.Slug, nil),
		nil, map[string]string{"slug": tr.Slug})
	env.Reader.Show(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	var view PostView
	if err := json.NewDecoder(w.Body).Decode(&view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.Post.Slug != tr.Slug {
		t.Errorf("slug: got %q, want %q", view.Post.Slug, tr.Slug)
	}
	// The markdown heading comes back as HTML.
	if !strings.Contains(view.BodyHTML, "<h1") {
		t.Errorf("body html: got %q, want a rendered heading", view.BodyHTML)
	}
}

func TestReaderShowUnknownSlugIs404(t *testing.T) {
	env := newTestEnv(t)

	w := httptest.NewRecorder()
	r := env.prepRequest(httptest.NewRequest("GET", "/blog/"+env.Lang.Code+"/missing", nil),
		nil, map[string]string{"slug": "missing-" + env.Lang.Code})
	env.Reader.Show(w, r)

	if w.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", w.Code)
	}
}

func TestReaderShowScheduledPostHiddenFromPublic(t *testing.T) {
	env := newTestEnv(t)

	_, tr := env.newPost(t, future(), true)

	w := httptest.NewRecorder()
	r := env.prepRequest(httptest.NewRequest("GET", "/blog/"+env.Lang.Code+"/"+tr.Slug, nil),
		nil, map[string]string{"slug": tr.Slug})
	env.Reader.Show(w, r)
	if w.Code != http.StatusNotFound {
		t.Errorf("anonymous status: got %d, want 404", w.Code)
	}

	// An editor previews the same URL successfully.
	w = httptest.NewRecorder()
	r = env.prepRequest(httptest.NewRequest("GET", "/blog/"+env.Lang.Code+"/"+tr.Slug, nil),
		editorSession(), map[string]string{"slug": tr.Slug})
	env.Reader.Show(w, r)
	if w.Code != http.StatusOK {
		t.Errorf("editor status: got %d, want 200", w.Code)
	}
}

func TestReaderSearchDisabled(t *testing.T) {
	env := newTestEnv(t)
	env.Cfg.SearchEnabled = false

	w := httptest.NewRecorder()
	r := env.prepRequest(httptest.NewRequest("GET", "/blog/search?s=anything", nil), nil, nil)
	env.Reader.Search(w, r)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", w.Code)
	}
}

func TestReaderSearchFindsPost(t *testing.T) {
	env := newTestEnv(t)

	_, tr := env.newPost(t, past(), true)
	env.newPost(t, future(), true) // must never surface in results

	// Search on the generated unique title suffix.
	parts := strings.Split(tr.Title, " ")
	needle := parts[len(parts)-1]

	w := httptest.NewRecorder()
	r := env.prepRequest(httptest.NewRequest("GET", "/blog/search?s="+needle, nil), nil, nil)
	env.Reader.Search(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status: got %d, want 200", w.Code)
	}
	var view SearchView
	if err := json.NewDecoder(w.Body).Decode(&view); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if view.Query != needle {
		t.Errorf("query echoed: got %q, want %q", view.Query, needle)
	}
	if len(view.Results) != 1 {
		t.Fatalf("results: got %d, want 1", len(view.Results))
	}
	if view.Results[0].Slug != tr.Slug {
		t.Errorf("result slug: got %q, want %q", view.Results[0].Slug, tr.Slug)
	}
}
