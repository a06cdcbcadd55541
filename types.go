package agencyhub

import (
	"time"
)

const (
	VoteCookiePrefix = "voted_"
	VoteCookieMaxAge = 30 * 24 * time.Hour

	PublicVoteIDLength = 8
)

// VoteTally is the public view of a voting session's counters.
type VoteTally struct {
	OriginalVotes int `json:"originalVotes"`
	VariantVotes  int `json:"variantVotes"`
}

// VoteLink is returned when a public voting session is opened.
type VoteLink struct {
	PublicVoteID string `json:"publicVoteId"`
	URL          string `json:"url"`
}

// Event is published on the realtime channel of a voting session.
type Event struct {
	Channel   string    `json:"channel"`
	Type      string    `json:"type"`
	Tally     VoteTally `json:"tally"`
	Timestamp time.Time `json:"timestamp"`
}

const (
	EventTypeSnapshot = "snapshot"
	EventTypeVote     = "vote"
	EventTypeReset    = "reset"
)
