// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// CommentChannel is the Valkey pub/sub channel comment-added events are
// published on for out-of-process consumers (moderation mailers etc.).
const CommentChannel = "blog:events:comment_added"

// ValkeySubscriber forwards comment-added events to a Valkey pub/sub
// channel as JSON. Pub/sub has no persistence, so delivery to external
// consumers is best-effort.
type ValkeySubscriber struct {
	client *redis.Client
}

// NewValkeySubscriber returns a subscriber publishing to the given client.
func NewValkeySubscriber(client *redis.Client) *ValkeySubscriber {
	return &ValkeySubscriber{client: client}
}

// HandleCommentAdded implements Subscriber.
func (v *ValkeySubscriber) HandleCommentAdded(ctx context.Context, ev CommentAdded) error {
	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal comment event: %w", err)
	}
	if err := v.client.Publish(ctx, CommentChannel, payload).Err(); err != nil {
		return fmt.Errorf("publish comment event: %w", err)
	}
	return nil
}
