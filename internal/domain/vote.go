package domain

import (
	"fmt"
	"time"

	"github.com/agencyhub/agencyhub"
)

// VotingSession pairs an original and its variant under one public id.
type VotingSession struct {
	ID                string    `json:"publicVoteId"`
	ClientID          string    `json:"clientId"`
	OriginalContentID string    `json:"originalContentId"`
	VariantContentID  string    `json:"variantContentId"`
	CreatedAt         time.Time `json:"createdAt"`
}

func (s VotingSession) Has(contentID string) bool {
	return contentID == s.OriginalContentID || contentID == s.VariantContentID
}

// PairSessions derives the voting sessions encoded in a content list. Every
// public vote id must sit on exactly one original and its own variant.
func PairSessions(clientID string, contents []GeneratedContent) ([]VotingSession, error) {
	groups := map[string][]GeneratedContent{}
	var order []string
	for _, item := range contents {
		if item.PublicVoteID == "" {
			continue
		}
		if _, ok := groups[item.PublicVoteID]; !ok {
			order = append(order, item.PublicVoteID)
		}
		groups[item.PublicVoteID] = append(groups[item.PublicVoteID], item)
	}

	sessions := make([]VotingSession, 0, len(order))
	for _, id := range order {
		items := groups[id]
		if len(items) != 2 {
			return nil, ConflictError{Message: fmt.Sprintf("vote %s is shared by %d items", id, len(items))}
		}
		a, b := items[0], items[1]
		var original, variant GeneratedContent
		switch {
		case b.VariantOfID == a.ID && !a.IsVariant():
			original, variant = a, b
		case a.VariantOfID == b.ID && !b.IsVariant():
			original, variant = b, a
		default:
			return nil, ConflictError{Message: fmt.Sprintf("vote %s does not pair an original with its variant", id)}
		}
		sessions = append(sessions, VotingSession{
			ID:                id,
			ClientID:          clientID,
			OriginalContentID: original.ID,
			VariantContentID:  variant.ID,
		})
	}
	return sessions, nil
}

// Tally reads the two counters of a session from the content list.
func (c *Client) Tally(s VotingSession) (agencyhub.VoteTally, error) {
	original, err := c.Content(s.OriginalContentID)
	if err != nil {
		return agencyhub.VoteTally{}, err
	}
	variant, err := c.Content(s.VariantContentID)
	if err != nil {
		return agencyhub.VoteTally{}, err
	}
	return agencyhub.VoteTally{
		OriginalVotes: original.Votes,
		VariantVotes:  variant.Votes,
	}, nil
}

// VoteView is what an anonymous voter sees.
type VoteView struct {
	PublicVoteID string              `json:"publicVoteId"`
	ClientName   string              `json:"clientName"`
	Original     GeneratedContent    `json:"originalContent"`
	Variant      GeneratedContent    `json:"variantContent"`
	Tally        agencyhub.VoteTally `json:"tally"`
	HasVoted     bool                `json:"hasVoted"`
}

// Voter identifies an anonymous voter as well as the request allows.
type Voter struct {
	IP        string
	UserAgent string
}
