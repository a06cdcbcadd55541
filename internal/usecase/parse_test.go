package usecase

import "testing"

func TestExtractJSON(t *testing.T) {
	testCases := []struct {
		name string
		in   string
		want string
	}{
		{"bare", `{"a":1}`, `{"a":1}`},
		{"fenced", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fence without language", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"prose around", "Sure! {\"a\":{\"b\":2}} Hope that helps.", `{"a":{"b":2}}`},
		{"no object", "nothing here", "nothing here"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := extractJSON(tc.in); got != tc.want {
				t.Fatalf("extractJSON(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseProposal(t *testing.T) {
	p, ok := parseProposal(`{"executiveSummary":"Plan","scope":["a"]}`)
	if !ok || p.ExecutiveSummary != "Plan" {
		t.Fatalf("unexpected proposal %+v", p)
	}

	p, ok = parseProposal("just some prose")
	if ok || p.ExecutiveSummary != "just some prose" || p.Scope == nil {
		t.Fatalf("unexpected fallback %+v", p)
	}
}
