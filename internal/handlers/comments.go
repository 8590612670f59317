// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"smartblog/internal/cache"
	"smartblog/internal/captcha"
	"smartblog/internal/config"
	"smartblog/internal/events"
	"smartblog/internal/middleware"
	"smartblog/internal/models"
	"smartblog/internal/session"
	"smartblog/internal/store"
)

// Comments handles comment submission. A submission moves through a fixed
// pipeline: feature check, post resolution, captcha, field capture per
// configuration, persistence, then exactly one comment-added event. Any
// failure before persistence leaves nothing behind.
type Comments struct {
	cfg          *config.Config
	translations *store.TranslationStore
	comments     *store.CommentStore
	dispatcher   *events.Dispatcher
	captcha      captcha.Captcha // nil when no captcha is configured
	pageCache    *cache.PageCache
}

// NewComments creates a Comments handler group. captcha may be nil.
func NewComments(cfg *config.Config, translations *store.TranslationStore, comments *store.CommentStore, dispatcher *events.Dispatcher, cap captcha.Captcha, pageCache *cache.PageCache) *Comments {
	return &Comments{
		cfg:          cfg,
		translations: translations,
		comments:     comments,
		dispatcher:   dispatcher,
		captcha:      cap,
		pageCache:    pageCache,
	}
}

// commentForm carries the submitted fields before configuration gating.
type commentForm struct {
	AuthorName    string
	AuthorEmail   string
	AuthorWebsite string
	Body          string
}

// Add accepts a new comment for the post whose translation matches the
// {slug} URL segment in the request language.
func (h *Comments) Add(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// A non-built_in backend means the host renders a third-party widget;
	// reaching this endpoint is a deployment mistake, not user error.
	if h.cfg.Comments.Type != config.CommentsBuiltIn {
		render.Render(w, r, errFeatureDisabled("built-in comments are disabled"))
		return
	}

	lang := middleware.LanguageFromCtx(ctx)
	viewer := middleware.ViewerFromCtx(ctx)
	slugParam := chi.URLParam(r, "slug")

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
		if err := h.captcha.VerifyComment(r, translation.Post); err != nil {
			render.Render(w, r, errValidation(err.Error()))
			return
		}
	}

	if err := r.ParseForm(); err != nil {
		render.Render(w, r, errValidation("malformed form submission"))
		return
	}
	form := commentForm{
		AuthorName:    r.PostFormValue("author_name"),
		AuthorEmail:   r.PostFormValue("author_email"),
		AuthorWebsite: r.PostFormValue("author_website"),
		Body:          r.PostFormValue("comment"),
	}
	if msg := validateComment(form); msg != "" {
		render.Render(w, r, errValidation(msg))
		return
	}

	comment := buildComment(form, h.cfg.Comments, middleware.SessionFromCtx(ctx), remoteIP(r), translation.PostID)

	saved, err := h.comments.Create(ctx, &comment)
	if err != nil {
		slog.Error("create comment failed", "slug", slugParam, "error", err)
		render.Render(w, r, errStorage())
		return
	}

	// Exactly one event per persisted comment. Subscribers run
	// synchronously; their failures are theirs to handle.
	h.dispatcher.PublishCommentAdded(ctx, events.CommentAdded{
		Post:    translation.Post,
		Comment: saved,
	})

	// The cached single-post view now shows a stale comment list.
	h.pageCache.Invalidate(ctx, cache.PostKey(lang.Code, slugParam))

	writeJSON(w, http.StatusCreated, CommentView{
		Comment: *saved,
		Post:    *translation.Post,
	})
}

// buildComment constructs the comment to persist, applying the
// field-capture configuration: the IP only when capture is enabled, the
// author email and website only behind the (deliberately shared)
// ask-for-author-website gate, and the user reference only for
// authenticated submitters when save-user-id is on.
func buildComment(form commentForm, cfg config.Comments, sess *session.Data, ip string, postID uuid.UUID) models.Comment {
	comment := models.Comment{
		PostID:     postID,
		AuthorName: form.AuthorName,
		Body:       form.Body,
		Approved:   cfg.AutoApprove,
	}

	if cfg.SaveIPAddress && ip != "" {
		comment.IP = &ip
	}
	if cfg.AskForAuthorWebsite {
		if form.AuthorEmail != "" {
			comment.AuthorEmail = &form.AuthorEmail
		}
		if form.AuthorWebsite != "" {
			comment.AuthorWebsite = &form.AuthorWebsite
		}
	}
	if cfg.SaveUserID && sess != nil {
		userID := sess.UserID
		comment.UserID = &userID
	}

	return comment
}

// remoteIP extracts the bare client IP from RemoteAddr.
func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
