package handlers

import (
	"strings"
	"unicode/utf8"
)

// Validation limits for comment submission fields.
const (
	maxAuthorNameLen = 100
	maxEmailLen      = 254
	maxWebsiteLen    = 300
	maxCommentLen    = 10_000
)

// validateComment checks comment form inputs and returns the first error
// found, or "" when the submission is acceptable. Fields that
// configuration may discard are still validated; a submitter should
// learn about a bad email even when the deployment doesn't store it.
func validateComment(form commentForm) string {
	name := strings.TrimSpace(form.AuthorName)
	if name == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxAuthorNameLen {
		return "Name is too long (max 100 characters)."
	}

	body := strings.TrimSpace(form.Body)
	if body == "" {
		return "Comment is required."
	}
	if utf8.RuneCountInString(body) > maxCommentLen {
		return "Comment is too long (max 10,000 characters)."
	}

	if form.AuthorEmail != "" {
		if utf8.RuneCountInString(form.AuthorEmail) > maxEmailLen {
			return "Email is too long."
		}
		if !strings.Contains(form.AuthorEmail, "@") {
			return "Email address looks invalid."
		}
	}

	if form.AuthorWebsite != "" {
		if utf8.RuneCountInString(form.AuthorWebsite) > maxWebsiteLen {
			return "Website URL is too long."
		}
		if !strings.HasPrefix(form.AuthorWebsite, "http://") && !strings.HasPrefix(form.AuthorWebsite, "https://") {
			return "Website must start with http:// or https://."
		}
	}

	return ""
}
