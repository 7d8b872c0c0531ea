package documents

import "github.com/teefour-ai/teefour-api/internal/platform/pagination"

// DocumentUploadInput for POST /documents. The request body is the raw file.
type DocumentUploadInput struct {
	ClientID string `query:"clientId" required:"true" doc:"Owning client ID"`
	IntakeID string `query:"intakeId"                 doc:"Optional intake of the same client"`
	Filename string `query:"filename" maxLength:"255" doc:"Original file name" example:"w2-2024.pdf"`
	RawBody  []byte `contentType:"application/octet-stream"`
}

// DocumentsListInput for GET /documents
type DocumentsListInput struct {
	pagination.Params
	ClientID string `query:"clientId" doc:"Filter by client"`
	IntakeID string `query:"intakeId" doc:"Filter by intake"`
}

// DocumentGetInput for GET /documents/{documentId} and its content.
type DocumentGetInput struct {
	DocumentID string `path:"documentId" doc:"Document ID"`
}

// DocumentDeleteInput for DELETE /documents/{documentId}
type DocumentDeleteInput struct {
	DocumentID string `path:"documentId" doc:"Document ID"`
}
