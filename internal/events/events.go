// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package events carries the comment-added domain event from the comment
// pipeline to its subscribers (moderation mail, external queues, logs).
// Delivery is synchronous within the submitting request: every subscriber
// runs once, failures are logged and never retried here. Anything that
// needs async or at-least-once delivery belongs behind a subscriber.
package events

import (
	"context"
	"log/slog"

	"smartblog/internal/models"
)

// CommentAdded is published exactly once per successfully persisted comment.
type CommentAdded struct {
	Post    *models.Post    `json:"post"`
	Comment *models.Comment `json:"comment"`
}

// Subscriber receives comment-added events. Implementations must be safe
// for concurrent calls; the dispatcher gives no ordering guarantees
// across requests.
type Subscriber interface {
	HandleCommentAdded(ctx context.Context, ev CommentAdded) error
}

// Dispatcher fans a comment-added event out to a fixed subscriber list.
type Dispatcher struct {
	subs []Subscriber
}

// NewDispatcher creates a dispatcher with the given subscribers.
func NewDispatcher(subs ...Subscriber) *Dispatcher {
	return &Dispatcher{subs: subs}
}

// Subscribe appends a subscriber. Not safe to call once publishing has
// started; wire subscribers up during startup.
func (d *Dispatcher) Subscribe(s Subscriber) {
	d.subs = append(d.subs, s)
}

// PublishCommentAdded delivers the event to every subscriber in order.
// A failing subscriber does not stop delivery to the rest.
func (d *Dispatcher) PublishCommentAdded(ctx context.Context, ev CommentAdded) {
	for _, s := range d.subs {
		if err := s.HandleCommentAdded(ctx, ev); err != nil {
			slog.Error("comment added subscriber failed",
				"comment_id", ev.Comment.ID,
				"post_id", ev.Post.ID,
				"error", err,
			)
		}
	}
}

// LogSubscriber records comment-added events to the structured log.
type LogSubscriber struct{}

// HandleCommentAdded implements Subscriber.
func (LogSubscriber) HandleCommentAdded(_ context.Context, ev CommentAdded) error {
	slog.Info("comment added",
		"comment_id", ev.Comment.ID,
		"post_id", ev.Post.ID,
		"author", ev.Comment.AuthorName,
		"approved", ev.Comment.Approved,
	)
	return nil
}
