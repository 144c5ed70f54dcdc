package generation

import "clearclause/internal/providers"

// NoContentSentinel stands in for "the model returned nothing usable". It is
// never valid output.
const NoContentSentinel = "No content returned from AI model"

// ExtractText pulls the generated text out of a binding response. It tries,
// in order: an envelope around a text response, a top-level text response,
// and candidates[0].content.parts[0].text. Anything else yields the sentinel.
func ExtractText(resp providers.Response) string {
	if env, ok := resp.(providers.EnvelopeResponse); ok {
		if inner, ok := env.Inner.(providers.TextResponse); ok {
			return inner.Text
		}
		return NoContentSentinel
	}
	if tr, ok := resp.(providers.TextResponse); ok {
		return tr.Text
	}
	if cr, ok := resp.(providers.CandidatesResponse); ok {
		if len(cr.Candidates) == 0 {
			return NoContentSentinel
		}
		content := cr.Candidates[0].Content
		if content == nil || len(content.Parts) == 0 || content.Parts[0].Text == "" {
			return NoContentSentinel
		}
		return content.Parts[0].Text
	}
	return NoContentSentinel
}
