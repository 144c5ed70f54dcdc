package generation

import (
	"testing"

	"clearclause/internal/providers"

	"github.com/stretchr/testify/assert"
)

func TestExtractText(t *testing.T) {
	cases := []struct {
		name string
		resp providers.Response
		want string
	}{
		{"envelope", providers.EnvelopeResponse{Inner: providers.TextResponse{Text: "wrapped"}}, "wrapped"},
		{"top level", providers.TextResponse{Text: "direct"}, "direct"},
		{"candidates", providers.CandidatesResponse{Candidates: []providers.Candidate{{
			Content: &providers.Content{Parts: []providers.Part{{Text: "nested  text\n"}, {Text: "ignored"}}},
		}}}, "nested  text\n"},
		{"nil", nil, NoContentSentinel},
		{"envelope without text", providers.EnvelopeResponse{Inner: providers.CandidatesResponse{}}, NoContentSentinel},
		{"empty envelope", providers.EnvelopeResponse{}, NoContentSentinel},
		{"no candidates", providers.CandidatesResponse{}, NoContentSentinel},
		{"nil content", providers.CandidatesResponse{Candidates: []providers.Candidate{{}}}, NoContentSentinel},
		{"no parts", providers.CandidatesResponse{Candidates: []providers.Candidate{{Content: &providers.Content{}}}}, NoContentSentinel},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractText(tc.resp))
		})
	}
}
