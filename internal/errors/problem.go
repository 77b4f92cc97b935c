package errors

import (
	"encoding/json"
	"net/http"
)

// Problem type URIs for the API, following RFC 7807.
const (
	TypeValidation      = "/errors/validation"
	TypeNotFound        = "/errors/not-found"
	TypeFieldNotFound   = "/errors/data/field-not-found"
	TypeMissingHeader   = "/errors/data/missing-header"
	TypeMalformedInput  = "/errors/data/malformed-input"
	TypePayloadTooLarge = "/errors/payload-too-large"
	TypeRateLimit       = "/errors/rate-limit"
	TypeTimeout         = "/errors/timeout"
	TypeInternal        = "/errors/internal"
)

// ProblemDetails represents an RFC 7807 problem details response
type ProblemDetails struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`

	// Extensions contains additional problem-specific fields
	Extensions map[string]interface{} `json:"-"`
}

// Error implements the error interface so problems can flow through
// error returns.
func (p *ProblemDetails) Error() string {
	if p.Detail != "" {
		return p.Title + ": " + p.Detail
	}
	return p.Title
}

// MarshalJSON implements custom JSON marshaling to include extensions
// at the top level of the problem document.
func (p *ProblemDetails) MarshalJSON() ([]byte, error) {
	type alias ProblemDetails
	base, err := json.Marshal((*alias)(p))
	if err != nil {
		return nil, err
	}

	if len(p.Extensions) == 0 {
		return base, nil
	}

	var m map[string]interface{}
	if err := json.Unmarshal(base, &m); err != nil {
		return nil, err
	}
	for k, v := range p.Extensions {
		m[k] = v
	}
	return json.Marshal(m)
}

// Render writes the problem document with the application/problem+json
// media type. Problems bypass render.Respond so the content type
// survives.
func (p *ProblemDetails) Render(w http.ResponseWriter, r *http.Request) error {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	return json.NewEncoder(w).Encode(p)
}

// NewProblemDetails creates a new problem details response
func NewProblemDetails(status int, problemType, title, detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:   problemType,
		Title:  title,
		Status: status,
		Detail: detail,
	}
}

// WithInstance sets the instance URI on the problem
func (p *ProblemDetails) WithInstance(instance string) *ProblemDetails {
	p.Instance = instance
	return p
}

// WithExtension adds an extension field to the problem
func (p *ProblemDetails) WithExtension(key string, value interface{}) *ProblemDetails {
	if p.Extensions == nil {
		p.Extensions = make(map[string]interface{})
	}
	p.Extensions[key] = value
	return p
}
