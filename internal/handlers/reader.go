// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"smartblog/internal/cache"
	"smartblog/internal/captcha"
	"smartblog/internal/config"
	"smartblog/internal/markdown"
	"smartblog/internal/middleware"
	"smartblog/internal/search"
	"smartblog/internal/store"
)

// Reader groups the public read-side handlers: index listings, category
// browsing, search, and single-post views. Responses for unprivileged
// viewers are cached in Valkey; privileged previews always hit the
// database so authors see live data.
type Reader struct {
	cfg          *config.Config
	categories   *store.CategoryStore
	translations *store.TranslationStore
	comments     *store.CommentStore
	searcher     search.Searcher
	captcha      captcha.Captcha // nil when no captcha is configured
	pageCache    *cache.PageCache
}

// NewReader creates a Reader handler group. captcha may be nil.
func NewReader(cfg *config.Config, categories *store.CategoryStore, translations *store.TranslationStore, comments *store.CommentStore, searcher search.Searcher, cap captcha.Captcha, pageCache *cache.PageCache) *Reader {
	return &Reader{
		cfg:          cfg,
		categories:   categories,
		translations: translations,
		comments:     comments,
		searcher:     searcher,
		captcha:      cap,
		pageCache:    pageCache,
	}
}

// Index serves the blog index for the request language.
func (h *Reader) Index(w http.ResponseWriter, r *http.Request) {
	h.renderIndex(w, r, "")
}

// Category serves the blog index scoped to one category. An unknown
// category slug is a terminal 404, not an empty listing.
func (h *Reader) Category(w http.ResponseWriter, r *http.Request) {
	h.renderIndex(w, r, chi.URLParam(r, "categorySlug"))
}

// CategoryHierarchy serves a category index addressed by a slash-delimited
// path like general/announcements. Only the last segment is resolved;
// intermediate segments are not validated against the real ancestor chain.
func (h *Reader) CategoryHierarchy(w http.ResponseWriter, r *http.Request) {
	hierarchy := strings.Trim(chi.URLParam(r, "*"), "/")
	segments := strings.Split(hierarchy, "/")
	last := segments[len(segments)-1]
	if last == "" {
		render.Render(w, r, errNotFound())
		return
	}
	h.renderIndex(w, r, last)
}

// renderIndex assembles the IndexView: a page of visible translations
// (optionally category-scoped), the root categories with children, and
// the breadcrumb chain when scoped.
func (h *Reader) renderIndex(w http.ResponseWriter, r *http.Request, categorySlug string) {
	ctx := r.Context()
	lang := middleware.LanguageFromCtx(ctx)
	viewer := middleware.ViewerFromCtx(ctx)
	page := pageParam(r)

	cacheKey := cache.IndexKey(lang.Code, categorySlug, page)
	if !viewer.CanManagePosts {
		if cached, ok := h.pageCache.Get(ctx, cacheKey); ok {
			writeCached(w, cached)
			return
		}
	}

	view := IndexView{
		Locale: lang.Code,
		Title:  "Blog",
	}

	if categorySlug != "" {
		category, err := h.categories.FindBySlug(ctx, categorySlug)
		if errors.Is(err, store.ErrNotFound) {
			render.Render(w, r, errNotFound())
			return
		}
		if err != nil {
			slog.Error("find category failed", "slug", categorySlug, "error", err)
			render.Render(w, r, errStorage())
			return
		}

		chain, err := h.categories.AncestorsAndSelf(ctx, category.ID)
		if err != nil {
			slog.Error("category chain failed", "slug", categorySlug, "error", err)
			render.Render(w, r, errStorage())
			return
		}

		posts, err := h.translations.ListInCategory(ctx, lang.ID, category.ID, viewer, page, h.cfg.PerPage)
		if err != nil {
			slog.Error("list posts in category failed", "slug", categorySlug, "error", err)
			render.Render(w, r, errStorage())
			return
		}

		view.Title = "Posts in " + category.Name + " category"
		view.CategoryChain = chain
		view.Posts = posts
	} else {
		posts, err := h.translations.List(ctx, lang.ID, viewer, page, h.cfg.PerPage)
		if err != nil {
			slog.Error("list posts failed", "error", err)
			render.Render(w, r, errStorage())
			return
		}
		view.Posts = posts
	}

	roots, err := h.categories.Roots(ctx)
	if err != nil {
		slog.Error("list root categories failed", "error", err)
		render.Render(w, r, errStorage())
		return
	}
	// One batched lookup for the whole level, not a query per root.
	if err := h.categories.AttachChildren(ctx, roots); err != nil {
		slog.Error("attach category children failed", "error", err)
		render.Render(w, r, errStorage())
		return
	}
	view.Categories = roots

	body, err := writeJSON(w, http.StatusOK, view)
	if err != nil {
		slog.Error("encode index view failed", "error", err)
		return
	}
	if !viewer.CanManagePosts {
		h.pageCache.Set(ctx, cacheKey, body)
	}
}

// Search serves full-text search results. Search being switched off in
// configuration is a hard error, not an empty result.
func (h *Reader) Search(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !h.cfg.SearchEnabled {
		render.Render(w, r, errFeatureDisabled("search is disabled"))
		return
	}

	lang := middleware.LanguageFromCtx(ctx)
	viewer := middleware.ViewerFromCtx(ctx)
	query := r.URL.Query().Get("s")

	results, err := h.searcher.Search(ctx, query, lang.ID, viewer)
	if err != nil {
		slog.Error("search failed", "query", query, "error", err)
		render.Render(w, r, errStorage())
		return
	}

	categories, err := h.categories.List(ctx)
	if err != nil {
		slog.Error("list categories failed", "error", err)
		render.Render(w, r, errStorage())
		return
	}

	writeJSON(w, http.StatusOK, SearchView{
		Query:      query,
		Title:      "Search results for " + query,
		Results:    results,
		Categories: categories,
	})
}

// Show serves a single post by translation slug, with the body rendered
// to HTML and the approved comments (plus their submitting users) loaded.
func (h *Reader) Show(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lang := middleware.LanguageFromCtx(ctx)
	viewer := middleware.ViewerFromCtx(ctx)
	slugParam := chi.URLParam(r, "slug")

	cacheKey := cache.PostKey(lang.Code, slugParam)
	if !viewer.CanManagePosts {
		if cached, ok := h.pageCache.Get(ctx, cacheKey); ok {
			writeCached(w, cached)
			return
		}
	}

	translation, err := h.translations.FindBySlug(ctx, slugParam, lang.ID, viewer)
	if errors.Is(err, store.ErrNotFound) {
		render.Render(w, r, errNotFound())
		return
	}
	if err != nil {
		slog.Error("find translation failed", "slug", slugParam, "error", err)
		render.Render(w, r, errStorage())
		return
	}

	if h.captcha != nil {
		h.captcha.PrepareForDisplay(r, translation.Post)
	}

	comments, err := h.comments.ListApprovedForPost(ctx, translation.PostID)
	if err != nil {
		slog.Error("list comments failed", "slug", slugParam, "error", err)
		render.Render(w, r, errStorage())
		return
	}

	bodyHTML, err := markdown.ToHTML(translation.Body)
	if err != nil {
		slog.Error("render post body failed", "slug", slugParam, "error", err)
		render.Render(w, r, errStorage())
		return
	}

	body, err := writeJSON(w, http.StatusOK, PostView{
		Locale:   lang.Code,
		Post:     *translation,
		BodyHTML: bodyHTML,
		Comments: comments,
	})
	if err != nil {
		slog.Error("encode post view failed", "error", err)
		return
	}
	if !viewer.CanManagePosts {
		h.pageCache.Set(ctx, cacheKey, body)
	}
}

// pageParam reads the 1-based page number from the query string.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
