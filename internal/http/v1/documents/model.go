package documents

import (
	"github.com/teefour-ai/teefour-api/internal/platform/timeutil"
)

// Document represents document metadata in responses.
type Document struct {
	ID          string        `json:"id"                 doc:"Unique identifier"       example:"5f0c2b8e-1d3a-4c6f-8e2b-7a9d1c3e5f70"`
	ClientID    string        `json:"clientId"           doc:"Owning client ID"        example:"7d3c1c9e-5b1a-4b7e-9a51-2f0e6a4f1c2d"`
	IntakeID    string        `json:"intakeId,omitempty" doc:"Intake the document belongs to" example:"0b6a4d2e-8f3c-4a57-b1e4-9c2d7e5f3a10"`
	Filename    string        `json:"filename"           doc:"Original file name"      example:"w2-2024.pdf"`
	ContentType string        `json:"contentType"        doc:"Sniffed media type"      example:"application/pdf"`
	Size        int64         `json:"size"               doc:"Size in bytes"           example:"48213"`
	SHA256      string        `json:"sha256"             doc:"Hex SHA-256 of the bytes" example:"9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08"`
	ContentURL  string        `json:"contentUrl"         doc:"URL of the raw bytes"    example:"/documents/5f0c2b8e-1d3a-4c6f-8e2b-7a9d1c3e5f70/content"`
	CreatedAt   timeutil.Time `json:"createdAt"          doc:"Creation timestamp"      example:"2024-01-15T10:30:00.000Z"`
	UpdatedAt   timeutil.Time `json:"updatedAt"          doc:"Last update timestamp"   example:"2024-01-15T10:30:00.000Z"`
}
