// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Vote Types

VoteType is a closed enum with exactly two legal values. The zero value is
invalid, so an unset vote can never be persisted:

	vt, err := models.ParseVoteType("yes") // VoteYes
	_, err = models.ParseVoteType("maybe") // ErrInvalidVote

VoteType implements json.Marshaler, json.Unmarshaler, driver.Valuer and
sql.Scanner and is stored as the text "yes" or "no".

# Vote Status

VoteStatus is the tri-state answer to "has this origin voted":

	NotVoted
	VotedYes
	VotedNo

# Tallies

Tallies maps a country code to its yes/no counts. It is derived from the
vote store on demand and never persisted:

	tallies := models.Tallies{}
	tallies.Add("DK", models.VoteNo, 1)

# Request Types

  - CastVoteRequest: country, vote

# Response Types

  - CastVoteResponse: message, country, vote
  - StatusResponse: country, city, display, hasVoted, voteType
  - GlobalTallyResponse: yes, no, total
  - CountryTallyResponse: country, yes, no
  - HealthResponse: status, system, timestamp
  - ErrorResponse: error, message
*/
package models
