package usecase

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agencyhub/agencyhub/internal/domain"
)

const contentSystemPrompt = "You are a senior copywriter at a marketing agency. Write in the client's voice, follow the requested format exactly and return only the deliverable."

var maxTokensByType = map[domain.ContentType]int{
	domain.ContentBlog:        2000,
	domain.ContentLinkedIn:    600,
	domain.ContentTwitter:     800,
	domain.ContentEmail:       800,
	domain.ContentAdCopy:      600,
	domain.ContentPDFOnePager: 1000,
}

var formatByType = map[domain.ContentType]string{
	domain.ContentBlog: "Write a blog post of 800 to 1200 words with a compelling title, an introduction, " +
		"three to five subheaded sections and a conclusion with a call to action. Use markdown headings.",
	domain.ContentLinkedIn: "Write a LinkedIn post of at most 1300 characters. Open with a strong hook line, " +
		"use short paragraphs and end with a question or call to action and three relevant hashtags.",
	domain.ContentTwitter: "Write a Twitter thread of 5 to 7 tweets. Number each tweet (1/, 2/, ...) and keep " +
		"every tweet at or under 280 characters.",
	domain.ContentEmail: "Write a marketing email with three labelled parts: 'Subject:' (under 60 characters), " +
		"'Preview:' (under 90 characters) and 'Body:' with a clear call to action.",
	domain.ContentAdCopy: "Write ad copy with four labelled parts: 'Headline:' (max 30 characters), " +
		"'Description:' (max 90 characters), 'Long description:' (max 200 characters) and 'CTA:' (max 20 characters).",
	domain.ContentPDFOnePager: "Write the copy for a one-page PDF flyer. Respond with a single JSON object and nothing else, " +
		`shaped as {"headline": string, "subheadline": string, "keyBenefits": [string], ` +
		`"stats": [{"value": string, "label": string}], "callToAction": string, ` +
		`"contactInfo": {"email": string, "phone": string, "website": string}}. ` +
		"Use three to five key benefits and at most three stats. Leave contact fields empty when unknown.",
}

func maxTokensFor(t domain.ContentType) int {
	if n, ok := maxTokensByType[t]; ok {
		return n
	}
	return 1000
}

func describeClient(b *strings.Builder, req domain.ContentRequest) {
	fmt.Fprintf(b, "Client: %s\n", req.ClientName)
	if req.Industry != "" {
		fmt.Fprintf(b, "Industry: %s\n", req.Industry)
	}
	if req.TargetAudience != "" {
		fmt.Fprintf(b, "Target audience: %s\n", req.TargetAudience)
	}
	if req.BrandVoice != "" {
		fmt.Fprintf(b, "Brand voice: %s\n", req.BrandVoice)
	}
	if p := req.BrandProfile; p != nil {
		fmt.Fprintf(b, "Brand personality: %s\n", p.Personality)
		fmt.Fprintf(b, "Brand tone: %s\n", p.Tone)
		if p.Style != "" {
			fmt.Fprintf(b, "Visual style: %s\n", p.Style)
		}
	}
}

func contentPrompt(req domain.ContentRequest) domain.CompletionRequest {
	var b strings.Builder
	describeClient(&b, req)
	fmt.Fprintf(&b, "Topic: %s\n\n", req.Topic)
	b.WriteString(formatByType[req.ContentType])

	return domain.CompletionRequest{
		System:    contentSystemPrompt,
		Messages:  []domain.ChatTurn{{Role: domain.ChatRoleUser, Content: b.String()}},
		MaxTokens: maxTokensFor(req.ContentType),
	}
}

func variantPrompt(req domain.ContentRequest, original string) domain.CompletionRequest {
	var b strings.Builder
	describeClient(&b, req)
	fmt.Fprintf(&b, "Topic: %s\n\n", req.Topic)
	b.WriteString(formatByType[req.ContentType])
	b.WriteString("\n\nThis is an A/B test variant of the original below. Use a different headline, hook and structure, " +
		"but keep the same length class, the same format and the same key message.\n\nOriginal:\n")
	b.WriteString(original)

	return domain.CompletionRequest{
		System:    contentSystemPrompt,
		Messages:  []domain.ChatTurn{{Role: domain.ChatRoleUser, Content: b.String()}},
		MaxTokens: maxTokensFor(req.ContentType),
	}
}

func refinePrompt(t domain.ContentType, content, instruction string) domain.CompletionRequest {
	var b strings.Builder
	fmt.Fprintf(&b, "Revise the following %s according to this instruction: %s\n", t, instruction)
	if format, ok := formatByType[t]; ok {
		fmt.Fprintf(&b, "Keep to the original format: %s\n", format)
	}
	b.WriteString("\nContent:\n")
	b.WriteString(content)

	return domain.CompletionRequest{
		System:    contentSystemPrompt,
		Messages:  []domain.ChatTurn{{Role: domain.ChatRoleUser, Content: b.String()}},
		MaxTokens: maxTokensFor(t),
	}
}

const proposalMaxTokens = 2000

func proposalPrompt(client domain.Client) domain.CompletionRequest {
	var b strings.Builder
	fmt.Fprintf(&b, "Prepare a marketing services proposal for %s.\n", client.DisplayName())
	if client.Industry != "" {
		fmt.Fprintf(&b, "Industry: %s\n", client.Industry)
	}
	if client.Website != "" {
		fmt.Fprintf(&b, "Website: %s\n", client.Website)
	}
	if client.TargetAudience != "" {
		fmt.Fprintf(&b, "Target audience: %s\n", client.TargetAudience)
	}
	if len(client.DiscoveryData) > 0 {
		b.WriteString("\nDiscovery answers:\n")
		keys := make([]string, 0, len(client.DiscoveryData))
		for k := range client.DiscoveryData {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "- %s: %s\n", k, client.DiscoveryData[k])
		}
	}
	if client.Notes != "" {
		fmt.Fprintf(&b, "\nAccount notes: %s\n", client.Notes)
	}
	b.WriteString("\nRespond with a single JSON object and nothing else, shaped as " +
		`{"executiveSummary": string, "scope": [string], ` +
		`"timeline": [{"phase": string, "duration": string, "description": string}], ` +
		`"pricing": {"items": [{"item": string, "cost": string}], "total": string}, "deliverables": [string]}.`)

	return domain.CompletionRequest{
		System:    "You are an agency account director writing concise, concrete proposals.",
		Messages:  []domain.ChatTurn{{Role: domain.ChatRoleUser, Content: b.String()}},
		MaxTokens: proposalMaxTokens,
	}
}

const reportMaxTokens = 1500

func reportPrompt(client domain.Client, tallies map[string]string, focus string) domain.CompletionRequest {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a short client report for %s covering the marketing content produced so far.\n", client.DisplayName())
	fmt.Fprintf(&b, "Onboarding stage: %s\n", client.OnboardingStage)
	counts := map[domain.ContentType]int{}
	for _, item := range client.MarketingContent {
		counts[item.Type]++
	}
	for _, t := range domain.ContentTypes {
		if counts[t] > 0 {
			fmt.Fprintf(&b, "- %s pieces: %d\n", t, counts[t])
		}
	}
	if len(tallies) > 0 {
		b.WriteString("\nA/B vote results:\n")
		keys := make([]string, 0, len(tallies))
		for k := range tallies {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "- %s: %s\n", k, tallies[k])
		}
	}
	if focus != "" {
		fmt.Fprintf(&b, "\nFocus the report on: %s\n", focus)
	}
	b.WriteString("\nInclude a summary, highlights and recommended next steps. Use markdown.")

	return domain.CompletionRequest{
		System:    "You are an agency account manager reporting progress to a client.",
		Messages:  []domain.ChatTurn{{Role: domain.ChatRoleUser, Content: b.String()}},
		MaxTokens: reportMaxTokens,
	}
}

// DiscoveryQuestions is the fixed intake script.
var DiscoveryQuestions = []string{
	"What does your business do, and who are your ideal customers?",
	"What are your main marketing goals for the next six months?",
	"What have you tried so far, and what budget range are you considering?",
}

const discoveryMaxTokens = 400

func discoveryPrompt(client domain.Client, history []domain.ChatTurn) domain.CompletionRequest {
	var b strings.Builder
	fmt.Fprintf(&b, "You are the friendly intake assistant of a marketing agency, talking with %s. ", client.DisplayName())
	b.WriteString("Ask the following questions one at a time, in order, briefly acknowledging each answer before asking the next. ")
	b.WriteString("Do not ask anything else. After the last answer, thank the client and tell them the team will follow up.\n")
	for i, q := range DiscoveryQuestions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, q)
	}

	messages := make([]domain.ChatTurn, 0, len(history))
	for _, turn := range history {
		if turn.Role == domain.ChatRoleSystem {
			continue
		}
		messages = append(messages, turn)
	}

	return domain.CompletionRequest{
		System:    b.String(),
		Messages:  messages,
		MaxTokens: discoveryMaxTokens,
	}
}

const brandMaxTokens = 500

func brandPrompt(imageURL string) domain.CompletionRequest {
	return domain.CompletionRequest{
		System: "You are a brand designer.",
		Messages: []domain.ChatTurn{{
			Role: domain.ChatRoleUser,
			Content: "Analyze this brand image. Respond with a single JSON object and nothing else, shaped as " +
				`{"colors": [hex strings, dominant first, at most five], "style": string, "personality": string, "tone": string}.`,
		}},
		MaxTokens: brandMaxTokens,
		ImageURL:  imageURL,
	}
}
