package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

type ContentType string

const (
	ContentBlog        ContentType = "blog"
	ContentLinkedIn    ContentType = "linkedin"
	ContentTwitter     ContentType = "twitter"
	ContentEmail       ContentType = "email"
	ContentAdCopy      ContentType = "ad-copy"
	ContentPDFOnePager ContentType = "pdf-onepager"
)

var ContentTypes = []ContentType{
	ContentBlog,
	ContentLinkedIn,
	ContentTwitter,
	ContentEmail,
	ContentAdCopy,
	ContentPDFOnePager,
}

func ParseContentType(s string) (ContentType, error) {
	for _, t := range ContentTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", InvalidArgumentError{Message: fmt.Sprintf("unknown content type %q", s)}
}

// PDFTemplate selects the presentation of a one-pager. It never affects the data.
type PDFTemplate string

const (
	TemplateModernMinimal         PDFTemplate = "modern-minimal"
	TemplateBoldImpact            PDFTemplate = "bold-impact"
	TemplateCorporateProfessional PDFTemplate = "corporate-professional"
	TemplateCreativeGeometric     PDFTemplate = "creative-geometric"
)

var PDFTemplates = []PDFTemplate{
	TemplateModernMinimal,
	TemplateBoldImpact,
	TemplateCorporateProfessional,
	TemplateCreativeGeometric,
}

// ParseTemplate defaults to modern-minimal when s is empty.
func ParseTemplate(s string) (PDFTemplate, error) {
	if s == "" {
		return TemplateModernMinimal, nil
	}
	for _, t := range PDFTemplates {
		if string(t) == s {
			return t, nil
		}
	}
	return "", InvalidArgumentError{Message: fmt.Sprintf("unknown pdf template %q", s)}
}

// GeneratedContent is one generated artifact in a client's content list.
type GeneratedContent struct {
	ID      string      `json:"id"`
	Type    ContentType `json:"type"`
	Topic   string      `json:"topic,omitempty"`
	Content string      `json:"content"`

	Template PDFTemplate `json:"template,omitempty"`

	// Present only on variants; points at the original's id.
	VariantOfID  string `json:"variantOfId,omitempty"`
	VariantLabel string `json:"variantLabel,omitempty"`

	// Shared by exactly the two members of a public voting pair.
	PublicVoteID string `json:"publicVoteId,omitempty"`
	Votes        int    `json:"votes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (g *GeneratedContent) IsVariant() bool {
	return g.VariantOfID != ""
}

func (g *GeneratedContent) resetVoting() {
	g.PublicVoteID = ""
	g.Votes = 0
}

// Payload is the typed form of GeneratedContent.Content.
type Payload interface {
	ContentType() ContentType
	Encode() (string, error)
}

// TextPayload carries the free text of every type except pdf-onepager.
type TextPayload struct {
	Type ContentType
	Text string
}

func (p TextPayload) ContentType() ContentType { return p.Type }

func (p TextPayload) Encode() (string, error) { return p.Text, nil }

// OnePager is the structured payload of a pdf-onepager.
type OnePager struct {
	Headline     string      `json:"headline"`
	Subheadline  string      `json:"subheadline"`
	KeyBenefits  []string    `json:"keyBenefits"`
	Stats        []Stat      `json:"stats,omitempty"`
	CallToAction string      `json:"callToAction"`
	ContactInfo  ContactInfo `json:"contactInfo"`
}

type Stat struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

type ContactInfo struct {
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Website string `json:"website,omitempty"`
}

func (p OnePager) ContentType() ContentType { return ContentPDFOnePager }

func (p OnePager) Encode() (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// DecodePayload validates content against the shape its type requires.
func DecodePayload(t ContentType, content string) (Payload, error) {
	switch t {
	case ContentPDFOnePager:
		var p OnePager
		if err := json.Unmarshal([]byte(content), &p); err != nil {
			return nil, InvalidArgumentError{Message: "pdf-onepager content must be a JSON one-pager object"}
		}
		if strings.TrimSpace(p.Headline) == "" {
			return nil, InvalidArgumentError{Message: "pdf-onepager headline is required"}
		}
		return p, nil
	case ContentBlog, ContentLinkedIn, ContentTwitter, ContentEmail, ContentAdCopy:
		if strings.TrimSpace(content) == "" {
			return nil, InvalidArgumentError{Message: "content is required"}
		}
		return TextPayload{Type: t, Text: content}, nil
	default:
		return nil, InvalidArgumentError{Message: fmt.Sprintf("unknown content type %q", t)}
	}
}

// ContentRequest is the input of every generation call.
type ContentRequest struct {
	ContentType    ContentType   `json:"contentType"`
	ClientName     string        `json:"clientName"`
	Industry       string        `json:"industry"`
	Topic          string        `json:"topic"`
	TargetAudience string        `json:"targetAudience"`
	BrandVoice     string        `json:"brandVoice,omitempty"`
	BrandProfile   *BrandProfile `json:"brandProfile,omitempty"`
}

func (r ContentRequest) Validate() error {
	if _, err := ParseContentType(string(r.ContentType)); err != nil {
		return err
	}
	if strings.TrimSpace(r.ClientName) == "" {
		return InvalidArgumentError{Message: "clientName is required"}
	}
	if strings.TrimSpace(r.Topic) == "" {
		return InvalidArgumentError{Message: "topic is required"}
	}
	return nil
}

// GeneratedOutput is what the generation gateway hands back; OnePager is set
// only for pdf-onepager requests.
type GeneratedOutput struct {
	ContentType ContentType `json:"contentType"`
	Content     string      `json:"content"`
	OnePager    *OnePager   `json:"onePager,omitempty"`
}

// CompletionRequest is one call to the hosted completion service.
type CompletionRequest struct {
	System    string
	Messages  []ChatTurn
	MaxTokens int
	// ImageURL attaches an image to the last user message.
	ImageURL string
}
