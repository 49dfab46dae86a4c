// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package events

import (
	"context"

	"github.com/danielhkuo/project51/models"
)

// EventVoteCast is the event type header value on published messages
const EventVoteCast = "vote.cast"

type Publisher interface {
	Publish(ctx context.Context, event models.VoteCast) error
	Close() error
}

// NopPublisher discards every event
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, event models.VoteCast) error { return nil }

func (NopPublisher) Close() error { return nil }
