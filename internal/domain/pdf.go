package domain

import (
	"strings"
)

type DocumentKind string

const (
	DocumentOnePager DocumentKind = "onepager"
	DocumentProposal DocumentKind = "proposal"
)

// PDFDocument is everything a renderer needs. Exactly one of OnePager and
// Proposal is set, matching Kind.
type PDFDocument struct {
	Kind       DocumentKind `json:"kind"`
	Template   PDFTemplate  `json:"template"`
	ClientName string       `json:"clientName"`
	LogoURL    string       `json:"logoUrl,omitempty"`
	Palette    []string     `json:"palette,omitempty"`
	OnePager   *OnePager    `json:"fields,omitempty"`
	Proposal   *Proposal    `json:"proposal,omitempty"`
}

func (d PDFDocument) Validate() error {
	switch d.Kind {
	case DocumentOnePager:
		if d.OnePager == nil {
			return InvalidArgumentError{Message: "fields are required"}
		}
	case DocumentProposal:
		if d.Proposal == nil {
			return InvalidArgumentError{Message: "proposal is required"}
		}
	default:
		return InvalidArgumentError{Message: "unknown document kind"}
	}
	if strings.TrimSpace(d.ClientName) == "" {
		return InvalidArgumentError{Message: "clientName is required"}
	}
	if _, err := ParseTemplate(string(d.Template)); err != nil {
		return err
	}
	return nil
}
