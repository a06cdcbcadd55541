package usecase

import (
	"encoding/json"
	"strings"

	"github.com/pkg/errors"

	"github.com/agencyhub/agencyhub/internal/domain"
)

// extractJSON strips markdown fences and surrounding prose from a model
// response and returns the outermost JSON object.
func extractJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if i := strings.Index(s, "```"); i >= 0 {
		rest := s[i+3:]
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			rest = rest[nl+1:]
		}
		if j := strings.Index(rest, "```"); j >= 0 {
			rest = rest[:j]
		}
		s = strings.TrimSpace(rest)
	}
	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end < start {
		return s
	}
	return s[start : end+1]
}

func parseOnePager(raw string) (domain.OnePager, error) {
	var p domain.OnePager
	if err := json.Unmarshal([]byte(extractJSON(raw)), &p); err != nil {
		return domain.OnePager{}, errors.Wrap(err, "one-pager response is not valid JSON")
	}
	if strings.TrimSpace(p.Headline) == "" {
		return domain.OnePager{}, errors.New("one-pager response has no headline")
	}
	return p, nil
}

const degradedSummaryLimit = 500

// parseProposal never fails: an unparseable response becomes a proposal whose
// executive summary is the truncated raw text.
func parseProposal(raw string) (domain.Proposal, bool) {
	var p domain.Proposal
	if err := json.Unmarshal([]byte(extractJSON(raw)), &p); err == nil && p.ExecutiveSummary != "" {
		return p, true
	}

	summary := strings.TrimSpace(raw)
	if r := []rune(summary); len(r) > degradedSummaryLimit {
		summary = string(r[:degradedSummaryLimit]) + "..."
	}
	return domain.Proposal{
		ExecutiveSummary: summary,
		Scope:            []string{},
		Timeline:         []domain.Milestone{},
		Pricing:          domain.Pricing{Items: []domain.PriceItem{}},
		Deliverables:     []string{},
	}, false
}

func parseBrandProfile(raw string) (domain.BrandProfile, error) {
	var p domain.BrandProfile
	if err := json.Unmarshal([]byte(extractJSON(raw)), &p); err != nil {
		return domain.BrandProfile{}, errors.Wrap(err, "brand profile response is not valid JSON")
	}
	if len(p.Colors) > 5 {
		p.Colors = p.Colors[:5]
	}
	return p, nil
}
