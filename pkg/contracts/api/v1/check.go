package v1

import "accheck/pkg/contracts/domain"

// CheckRequest carries the parameters of a duplicate check submitted
// over the API. The file itself travels as a multipart part named
// "file"; these fields come from the accompanying form values.
type CheckRequest struct {
	Field  string `json:"field" validate:"required,min=1,max=256"`
	Format string `json:"format,omitempty" validate:"omitempty,oneof=json csv"`
}

// CheckResponse is the JSON envelope returned by a successful check.
type CheckResponse struct {
	Status string                  `json:"status"`
	Data   *domain.DuplicateReport `json:"data"`
}
