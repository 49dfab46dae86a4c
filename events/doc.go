// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package events publishes vote.cast notifications after a vote is recorded.

Publishing is best effort. A failed publish is logged by the caller and
never changes the outcome of the vote. With no brokers configured the
service uses NopPublisher.

Kafka messages are keyed by country code so that all votes for one
country land on the same partition. The value is the JSON encoding of
models.VoteCast:

	{"country":"DK","vote":"no","cast_at":"2025-01-01T12:00:00Z"}
*/
package events
