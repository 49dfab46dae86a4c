package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidVote is returned for a vote type other than "yes" or "no"
var ErrInvalidVote = errors.New("vote must be \"yes\" or \"no\"")

// UnknownCountry is the sentinel territory code for an unknown origin
const UnknownCountry = "XX"

type VoteType uint8

const (
	VoteYes VoteType = iota + 1
	VoteNo
)

// ParseVoteType accepts exactly "yes" or "no"
func ParseVoteType(s string) (VoteType, error) {
	switch s {
	case "yes":
		return VoteYes, nil
	case "no":
		return VoteNo, nil
	}
	return 0, ErrInvalidVote
}

func (v VoteType) Valid() bool {
	return v == VoteYes || v == VoteNo
}

func (v VoteType) String() string {
	switch v {
	case VoteYes:
		return "yes"
	case VoteNo:
		return "no"
	}
	return fmt.Sprintf("VoteType(%d)", uint8(v))
}

func (v VoteType) MarshalJSON() ([]byte, error) {
	if !v.Valid() {
		return nil, ErrInvalidVote
	}
	return json.Marshal(v.String())
}

func (v *VoteType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseVoteType(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Value stores the vote type as text
func (v VoteType) Value() (driver.Value, error) {
	if !v.Valid() {
		return nil, ErrInvalidVote
	}
	return v.String(), nil
}

// Scan reads the text form written by Value
func (v *VoteType) Scan(src any) error {
	var s string
	switch x := src.(type) {
	case string:
		s = x
	case []byte:
		s = string(x)
	default:
		return fmt.Errorf("cannot scan %T into VoteType", src)
	}
	parsed, err := ParseVoteType(s)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// VoteStatus is the outcome of a status lookup for one identity
type VoteStatus uint8

const (
	NotVoted VoteStatus = iota
	VotedYes
	VotedNo
)

// StatusOf maps a recorded vote type to its status
func StatusOf(v VoteType) VoteStatus {
	switch v {
	case VoteYes:
		return VotedYes
	case VoteNo:
		return VotedNo
	}
	return NotVoted
}

func (s VoteStatus) HasVoted() bool {
	return s == VotedYes || s == VotedNo
}

// VoteType returns the recorded vote, ok is false for NotVoted
func (s VoteStatus) VoteType() (VoteType, bool) {
	switch s {
	case VotedYes:
		return VoteYes, true
	case VotedNo:
		return VoteNo, true
	}
	return 0, false
}

// NormalizeCountry trims and upper-cases a client supplied country code.
// The code is self-reported and is not checked against geolocation.
func NormalizeCountry(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return UnknownCountry
	}
	return code
}

// Domain types

type Vote struct {
	ID            int64     `json:"-"`
	CountryCode   string    `json:"country"`
	Type          VoteType  `json:"vote"`
	IdentityToken string    `json:"-"` // Never expose in JSON
	CreatedAt     time.Time `json:"created_at"`
}

type Tally struct {
	Yes int64 `json:"yes"`
	No  int64 `json:"no"`
}

func (t Tally) Total() int64 {
	return t.Yes + t.No
}

// country code -> counts
type Tallies map[string]Tally

// Add folds n votes of the given type into the country's tally
func (t Tallies) Add(country string, vote VoteType, n int64) {
	tally := t[country]
	switch vote {
	case VoteYes:
		tally.Yes += n
	case VoteNo:
		tally.No += n
	default:
		return
	}
	t[country] = tally
}

// Totals sums every country
func (t Tallies) Totals() Tally {
	var total Tally
	for _, tally := range t {
		total.Yes += tally.Yes
		total.No += tally.No
	}
	return total
}

// VoteCast is emitted after a vote is recorded
type VoteCast struct {
	Country string    `json:"country"`
	Vote    VoteType  `json:"vote"`
	CastAt  time.Time `json:"cast_at"`
}

// Request types

// Vote is kept as a raw string so that a bad value is a validation
// failure rather than a JSON decoding failure
type CastVoteRequest struct {
	Country string `json:"country"`
	Vote    string `json:"vote"`
}

// Response types

type CastVoteResponse struct {
	Message string   `json:"message"`
	Country string   `json:"country"`
	Vote    VoteType `json:"vote"`
}

type StatusResponse struct {
	Country  string    `json:"country"`
	City     string    `json:"city"`
	Display  string    `json:"display"`
	HasVoted bool      `json:"hasVoted"`
	VoteType *VoteType `json:"voteType"`
}

type GlobalTallyResponse struct {
	Yes   int64 `json:"yes"`
	No    int64 `json:"no"`
	Total int64 `json:"total"`
}

type CountryTallyResponse struct {
	Country string `json:"country"`
	Yes     int64  `json:"yes"`
	No      int64  `json:"no"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	System    string `json:"system"`
	Timestamp string `json:"timestamp"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
