package domain

import (
	"time"
)

const (
	LabelOriginal = "Original"
	LabelVariantA = "Variant A"
	LabelVariantB = "Variant B"
)

func (c *Client) contentIndex(id string) int {
	for i := range c.MarketingContent {
		if c.MarketingContent[i].ID == id {
			return i
		}
	}
	return -1
}

// Content returns a pointer into the content list.
func (c *Client) Content(id string) (*GeneratedContent, error) {
	i := c.contentIndex(id)
	if i < 0 {
		return nil, NotFoundError{Resource: "content"}
	}
	return &c.MarketingContent[i], nil
}

// VariantOf returns the variant published for originalID, if any.
func (c *Client) VariantOf(originalID string) *GeneratedContent {
	for i := range c.MarketingContent {
		if c.MarketingContent[i].VariantOfID == originalID {
			return &c.MarketingContent[i]
		}
	}
	return nil
}

func (c *Client) AppendContent(item GeneratedContent) error {
	if item.ID == "" {
		return InvalidArgumentError{Message: "content id is required"}
	}
	if c.contentIndex(item.ID) >= 0 {
		return ConflictError{Message: "content id already exists"}
	}
	c.MarketingContent = append(c.MarketingContent, item)
	return nil
}

// EditContent replaces the payload of an item. Pairing and tallies are kept.
func (c *Client) EditContent(id, content string, template PDFTemplate, now time.Time) (GeneratedContent, error) {
	item, err := c.Content(id)
	if err != nil {
		return GeneratedContent{}, err
	}
	if _, err := DecodePayload(item.Type, content); err != nil {
		return GeneratedContent{}, err
	}
	item.Content = content
	if template != "" {
		item.Template = template
	}
	item.UpdatedAt = now
	return *item, nil
}

// UpsertVariant stores text as the variant of originalID. A new variant gets
// newID; an existing one is replaced in place, which requires confirm and
// clears the voting state of both items.
func (c *Client) UpsertVariant(originalID, newID, text string, confirm bool, now time.Time) (GeneratedContent, bool, error) {
	original, err := c.Content(originalID)
	if err != nil {
		return GeneratedContent{}, false, err
	}
	if original.IsVariant() {
		return GeneratedContent{}, false, InvalidArgumentError{Message: "cannot create a variant of a variant"}
	}

	if existing := c.VariantOf(originalID); existing != nil {
		if !confirm {
			return GeneratedContent{}, false, ErrVariantExists
		}
		existing.Content = text
		existing.UpdatedAt = now
		existing.resetVoting()
		original.resetVoting()
		return *existing, true, nil
	}

	item := GeneratedContent{
		ID:           newID,
		Type:         original.Type,
		Topic:        original.Topic,
		Content:      text,
		Template:     original.Template,
		VariantOfID:  original.ID,
		VariantLabel: LabelVariantB,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := c.AppendContent(item); err != nil {
		return GeneratedContent{}, false, err
	}
	return item, false, nil
}

// OpenVoteSession puts originalID and its variant under one public vote id,
// reusing an id they already share.
func (c *Client) OpenVoteSession(originalID string, newID func() (string, error)) (string, error) {
	original, err := c.Content(originalID)
	if err != nil {
		return "", err
	}
	if original.IsVariant() {
		return "", InvalidArgumentError{Message: "vote links are opened on the original content"}
	}
	variant := c.VariantOf(originalID)
	if variant == nil {
		return "", NotFoundError{Resource: "variant"}
	}

	if original.PublicVoteID != "" && original.PublicVoteID == variant.PublicVoteID {
		return original.PublicVoteID, nil
	}

	id, err := newID()
	if err != nil {
		return "", err
	}
	original.resetVoting()
	variant.resetVoting()
	original.PublicVoteID = id
	variant.PublicVoteID = id
	return id, nil
}

// PromoteVariant swaps roles between a variant and its original. Voting
// history is discarded.
func (c *Client) PromoteVariant(variantID string, now time.Time) (GeneratedContent, GeneratedContent, error) {
	variant, err := c.Content(variantID)
	if err != nil {
		return GeneratedContent{}, GeneratedContent{}, err
	}
	if !variant.IsVariant() {
		return GeneratedContent{}, GeneratedContent{}, InvalidArgumentError{Message: "content is not a variant"}
	}
	original, err := c.Content(variant.VariantOfID)
	if err != nil {
		return GeneratedContent{}, GeneratedContent{}, err
	}

	variant.VariantOfID = ""
	variant.VariantLabel = LabelOriginal
	variant.resetVoting()
	variant.UpdatedAt = now

	original.VariantOfID = variant.ID
	original.VariantLabel = LabelVariantA
	original.resetVoting()
	original.UpdatedAt = now

	return *variant, *original, nil
}

// RemoveContent deletes one item. If it was half of a pair the partner is
// detached and its voting state cleared.
func (c *Client) RemoveContent(id string) error {
	i := c.contentIndex(id)
	if i < 0 {
		return NotFoundError{Resource: "content"}
	}
	item := c.MarketingContent[i]

	if item.IsVariant() {
		if original, err := c.Content(item.VariantOfID); err == nil {
			original.resetVoting()
		}
	} else if variant := c.VariantOf(item.ID); variant != nil {
		variant.VariantOfID = ""
		variant.VariantLabel = ""
		variant.resetVoting()
	}

	c.MarketingContent = append(c.MarketingContent[:i], c.MarketingContent[i+1:]...)
	return nil
}

// RecordVote adds one vote to contentID, which must belong to publicVoteID.
func (c *Client) RecordVote(publicVoteID, contentID string) error {
	item, err := c.Content(contentID)
	if err != nil {
		return err
	}
	if item.PublicVoteID == "" || item.PublicVoteID != publicVoteID {
		return InvalidArgumentError{Message: "selected content is not part of this vote"}
	}
	item.Votes++
	return nil
}
