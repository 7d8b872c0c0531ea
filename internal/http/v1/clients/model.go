package clients

import (
	"github.com/teefour-ai/teefour-api/internal/platform/timeutil"
)

// Client represents a client response.
type Client struct {
	ID        string        `json:"id"                doc:"Unique identifier"     example:"7d3c1c9e-5b1a-4b7e-9a51-2f0e6a4f1c2d"`
	Name      string        `json:"name"              doc:"Full name"             example:"Ada Lovelace"`
	Email     string        `json:"email"             doc:"Email address"         example:"ada@example.com"`
	Phone     string        `json:"phone,omitempty"   doc:"Phone number"          example:"+358401234567"`
	Company   string        `json:"company,omitempty" doc:"Company name"          example:"Analytical Engines Oy"`
	CreatedAt timeutil.Time `json:"createdAt"         doc:"Creation timestamp"    example:"2024-01-15T10:30:00.000Z"`
	UpdatedAt timeutil.Time `json:"updatedAt"         doc:"Last update timestamp" example:"2024-01-15T10:30:00.000Z"`
}
