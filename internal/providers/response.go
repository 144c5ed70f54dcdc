package providers

// Response is the closed set of shapes a binding can hand back. Callers
// switch on the concrete type; there is no other implementation.
type Response interface {
	responseVariant()
}

// TextResponse is returned by bindings that expose the generated text directly.
type TextResponse struct {
	Text string
}

// EnvelopeResponse wraps a nested response object, the way some SDKs return a
// result whose payload sits one level down. None of the bindings here produce
// it; it exists for SDKs that wrap their response.
type EnvelopeResponse struct {
	Inner Response
}

// CandidatesResponse mirrors the raw candidates/content/parts tree.
type CandidatesResponse struct {
	Candidates []Candidate
}

type Candidate struct {
	Content *Content
}

type Content struct {
	Parts []Part
}

type Part struct {
	Text string
}

func (TextResponse) responseVariant()       {}
func (EnvelopeResponse) responseVariant()   {}
func (CandidatesResponse) responseVariant() {}
