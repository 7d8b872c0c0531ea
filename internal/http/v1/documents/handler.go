package documents

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"net/url"

	"github.com/danielgtaylor/huma/v2"

	"github.com/teefour-ai/teefour-api/internal/platform/pagination"
	"github.com/teefour-ai/teefour-api/internal/platform/storage"
	"github.com/teefour-ai/teefour-api/internal/platform/timeutil"
	documentsvc "github.com/teefour-ai/teefour-api/internal/service/document"
)

const (
	// Prefix is the path prefix of the documents group.
	Prefix     = "/documents"
	cursorType = "document"
)

// Group serves the document endpoints under Prefix.
type Group struct {
	svc      documentsvc.Service
	maxBytes int64
}

// NewGroup creates the documents route group. maxBytes caps request bodies
// of uploads; zero means documentsvc.DefaultMaxBytes.
func NewGroup(svc documentsvc.Service, maxBytes int64) *Group {
	if maxBytes <= 0 {
		maxBytes = documentsvc.DefaultMaxBytes
	}
	return &Group{svc: svc, maxBytes: maxBytes}
}

func (g *Group) Prefix() string { return Prefix }

// Register registers document endpoints.
func (g *Group) Register(api huma.API) {
	svc := g.svc

	huma.Register(api, huma.Operation{
		OperationID:   "upload-document",
		Method:        http.MethodPost,
		Path:          Prefix,
		Summary:       "Upload document",
		Description:   "Stores the raw request body as a document of a client. The type is sniffed from the bytes.",
		Tags:          []string{"Documents"},
		DefaultStatus: http.StatusCreated,
		MaxBodyBytes:  g.maxBytes,
		Errors: []int{
			http.StatusRequestEntityTooLarge,
			http.StatusUnsupportedMediaType,
			http.StatusUnprocessableEntity,
			http.StatusServiceUnavailable,
		},
	}, func(ctx context.Context, input *DocumentUploadInput) (*DocumentUploadOutput, error) {
		doc, err := svc.Upload(ctx, documentsvc.UploadParams{
			ClientID: input.ClientID,
			IntakeID: input.IntakeID,
			Filename: input.Filename,
			Data:     input.RawBody,
		})
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &DocumentUploadOutput{
			Location: Prefix + "/" + doc.ID,
			Body:     toHTTPDocument(doc),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-documents",
		Method:      http.MethodGet,
		Path:        Prefix,
		Summary:     "List documents with cursor-based pagination",
		Description: "Returns document metadata ordered by upload time, optionally filtered by client and intake.",
		Tags:        []string{"Documents"},
	}, func(ctx context.Context, input *DocumentsListInput) (*DocumentsListOutput, error) {
		cursor, err := pagination.DecodeCursor(input.Cursor)
		if err != nil {
			return nil, huma.Error400BadRequest("invalid cursor format")
		}

		all, err := svc.List(ctx, documentsvc.ListFilter{
			ClientID: input.ClientID,
			IntakeID: input.IntakeID,
		})
		if err != nil {
			return nil, mapServiceError(err)
		}

		query := url.Values{}
		if input.ClientID != "" {
			query.Set("clientId", input.ClientID)
		}
		if input.IntakeID != "" {
			query.Set("intakeId", input.IntakeID)
		}

		result, err := pagination.Paginate(all, pagination.Page[documentsvc.Document]{
			Cursor:     cursor,
			Limit:      input.PageLimit(),
			CursorType: cursorType,
			ID:         func(d documentsvc.Document) string { return d.ID },
			BaseURL:    Prefix,
			Query:      query,
		})
		if err != nil {
			return nil, huma.Error400BadRequest("cursor does not match this listing")
		}

		items := make([]Document, len(result.Items))
		for i := range result.Items {
			items[i] = toHTTPDocument(&result.Items[i])
		}
		return &DocumentsListOutput{
			Link: result.LinkHeader,
			Body: DocumentsListData{Items: items, Total: result.Total},
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-document",
		Method:      http.MethodGet,
		Path:        Prefix + "/{documentId}",
		Summary:     "Get document metadata",
		Tags:        []string{"Documents"},
	}, func(ctx context.Context, input *DocumentGetInput) (*DocumentGetOutput, error) {
		doc, err := svc.Get(ctx, input.DocumentID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &DocumentGetOutput{Body: toHTTPDocument(doc)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-document-content",
		Method:      http.MethodGet,
		Path:        Prefix + "/{documentId}/content",
		Summary:     "Download document",
		Description: "Returns the stored bytes with their sniffed media type.",
		Tags:        []string{"Documents"},
	}, func(ctx context.Context, input *DocumentGetInput) (*DocumentContentOutput, error) {
		doc, data, err := svc.Content(ctx, input.DocumentID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &DocumentContentOutput{
			ContentType:        doc.ContentType,
			ContentDisposition: mime.FormatMediaType("attachment", map[string]string{"filename": doc.Filename}),
			Body:               data,
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-document",
		Method:        http.MethodDelete,
		Path:          Prefix + "/{documentId}",
		Summary:       "Delete document",
		Description:   "Deletes the metadata and the stored bytes.",
		Tags:          []string{"Documents"},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *DocumentDeleteInput) (*struct{}, error) {
		if err := svc.Delete(ctx, input.DocumentID); err != nil {
			return nil, mapServiceError(err)
		}
		return nil, nil
	})
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, documentsvc.ErrNotFound):
		return huma.Error404NotFound("document not found")
	case errors.Is(err, documentsvc.ErrTooLarge):
		return huma.NewError(http.StatusRequestEntityTooLarge, "document exceeds the maximum size")
	case errors.Is(err, documentsvc.ErrUnsupportedType):
		return huma.NewError(http.StatusUnsupportedMediaType, "unsupported document type")
	case errors.Is(err, documentsvc.ErrEmpty):
		return huma.Error422UnprocessableEntity("document is empty")
	case errors.Is(err, documentsvc.ErrClientNotFound):
		return huma.Error422UnprocessableEntity("client does not exist")
	case errors.Is(err, documentsvc.ErrIntakeNotFound):
		return huma.Error422UnprocessableEntity("intake does not exist for this client")
	case errors.Is(err, storage.ErrDisabled):
		return huma.Error503ServiceUnavailable("document storage is not configured")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}

func toHTTPDocument(d *documentsvc.Document) Document {
	return Document{
		ID:          d.ID,
		ClientID:    d.ClientID,
		IntakeID:    d.IntakeID,
		Filename:    d.Filename,
		ContentType: d.ContentType,
		Size:        d.Size,
		SHA256:      d.SHA256,
		ContentURL:  Prefix + "/" + d.ID + "/content",
		CreatedAt:   timeutil.Time{Time: d.CreatedAt},
		UpdatedAt:   timeutil.Time{Time: d.UpdatedAt},
	}
}
