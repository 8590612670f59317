// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// viewmodels.go defines the JSON payloads the public blog endpoints hand
// to the presentation layer. Rendering them to HTML is the host's job.
package handlers

import (
	"encoding/json"
	"net/http"

	"smartblog/internal/models"
	"smartblog/internal/store"
)

// IndexView is the payload for the blog index, optionally scoped to a
// category. CategoryChain is the root-to-category breadcrumb when scoped,
// nil otherwise. Categories always carries the root categories with their
// direct children attached.
type IndexView struct {
	Locale        string                 `json:"locale"`
	Title         string                 `json:"title"`
	CategoryChain []models.Category      `json:"category_chain,omitempty"`
	Categories    []models.Category      `json:"categories"`
	Posts         *store.TranslationPage `json:"posts"`
}

// SearchView is the payload for search results.
type SearchView struct {
	Query      string                   `json:"query"`
	Title      string                   `json:"title"`
	Results    []models.PostTranslation `json:"results"`
	Categories []models.Category        `json:"categories"`
}

// PostView is the payload for a single post: the requested translation,
// its body rendered to HTML, and the approved comments in insertion order.
type PostView struct {
	Locale   string                 `json:"locale"`
	Post     models.PostTranslation `json:"post"`
	BodyHTML string                 `json:"body_html"`
	Comments []models.Comment       `json:"comments"`
}

// CommentView is the payload returned after a successful submission. The
// submitter gets their comment back, including whether it is already
// approved or held for moderation.
type CommentView struct {
	Comment models.Comment `json:"comment"`
	Post    models.Post    `json:"post"`
}

// writeJSON marshals a view model, writes it with the given status, and
// returns the encoded bytes so callers can hand them to the page cache.
func writeJSON(w http.ResponseWriter, status int, v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
	return body, nil
}

// writeCached writes a previously cached JSON response body.
func writeCached(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write(body)
}
