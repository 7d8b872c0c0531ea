package intakes

import (
	"github.com/teefour-ai/teefour-api/internal/platform/timeutil"
)

// Intake represents an intake response.
type Intake struct {
	ID        string        `json:"id"              doc:"Unique identifier"     example:"0b6a4d2e-8f3c-4a57-b1e4-9c2d7e5f3a10"`
	ClientID  string        `json:"clientId"        doc:"Owning client ID"      example:"7d3c1c9e-5b1a-4b7e-9a51-2f0e6a4f1c2d"`
	TaxYear   int           `json:"taxYear"         doc:"Tax year"              example:"2025"`
	Status    string        `json:"status"          doc:"Intake status"         example:"open" enum:"open,in_progress,completed"`
	Notes     string        `json:"notes,omitempty" doc:"Free-form notes"       example:"Waiting for the W-2"`
	CreatedAt timeutil.Time `json:"createdAt"       doc:"Creation timestamp"    example:"2024-01-15T10:30:00.000Z"`
	UpdatedAt timeutil.Time `json:"updatedAt"       doc:"Last update timestamp" example:"2024-01-15T10:30:00.000Z"`
}
