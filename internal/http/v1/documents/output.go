package documents

// DocumentUploadOutput for POST /documents (201 Created)
type DocumentUploadOutput struct {
	Location string `header:"Location" doc:"URL of created document"`
	Body     Document
}

// DocumentGetOutput for GET /documents/{documentId}
type DocumentGetOutput struct {
	Body Document
}

// DocumentContentOutput for GET /documents/{documentId}/content
type DocumentContentOutput struct {
	ContentType        string `header:"Content-Type"        doc:"Stored media type"`
	ContentDisposition string `header:"Content-Disposition" doc:"Attachment with the original file name"`
	Body               []byte
}

// DocumentsListData is the response body containing paginated documents.
type DocumentsListData struct {
	Items []Document `json:"items" doc:"List of documents"`
	Total int        `json:"total" doc:"Total count of documents matching the filter" example:"12"`
}

// DocumentsListOutput is the response wrapper with pagination Link header.
type DocumentsListOutput struct {
	Link string `header:"Link" doc:"RFC 8288 pagination links"`
	Body DocumentsListData
}
