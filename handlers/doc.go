// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Project 51 API.

# Handler Types

Each handler is a struct built by a constructor that takes its
dependencies and the Config:

  - VotingHandler: vote submission
  - StatusHandler: requester location and vote status
  - StatsHandler: per-country, global and single-country tallies
  - HealthHandler: liveness

	tallies := handlers.NewTallyCache(voteStore, statsCache, cfg.StatsCacheTTL)
	votingHandler := handlers.NewVotingHandler(voteStore, cfg, tallies, publisher)

# Voting Flow

	POST /api/vote  {country, vote}  → CastVote
	GET  /api/me                     → GetMe

A requester is identified by a hash of the connecting address. The votes
table has a unique constraint on that hash; CastVote inserts directly and
maps a constraint violation to 409 "You have already voted." so that
concurrent duplicates resolve the same way as sequential ones. There is
no way to change or retract a vote.

The country sent with a vote is self-reported. It is normalized but not
compared against the requester's geolocation.

# Tallies

	GET /api/stats           → GetStats   {"DK":{"yes":0,"no":1}}
	GET /api/stats/global    → GetGlobal  {"yes":0,"no":1,"total":1}
	GET /api/stats/{country} → GetCountry {"country":"DK","yes":0,"no":1}

Tallies are cached for StatsCacheTTL. A recorded vote invalidates the
cache, so a client that just voted sees its own vote on the next read.
Store failures return 500 with no partial data.
*/
package handlers
