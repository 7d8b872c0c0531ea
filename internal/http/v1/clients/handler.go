package clients

import (
	"context"
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/teefour-ai/teefour-api/internal/platform/pagination"
	"github.com/teefour-ai/teefour-api/internal/platform/timeutil"
	clientsvc "github.com/teefour-ai/teefour-api/internal/service/client"
)

const (
	// Prefix is the path prefix of the clients group.
	Prefix     = "/clients"
	cursorType = "client"
)

// Group serves the client endpoints under Prefix.
type Group struct {
	svc clientsvc.Service
}

// NewGroup creates the clients route group.
func NewGroup(svc clientsvc.Service) *Group {
	return &Group{svc: svc}
}

func (g *Group) Prefix() string { return Prefix }

// Register registers client endpoints.
func (g *Group) Register(api huma.API) {
	svc := g.svc

	huma.Register(api, huma.Operation{
		OperationID:   "create-client",
		Method:        http.MethodPost,
		Path:          Prefix,
		Summary:       "Create client",
		Description:   "Creates a new client. Email addresses are unique.",
		Tags:          []string{"Clients"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *ClientCreateInput) (*ClientCreateOutput, error) {
		c, err := svc.Create(ctx, clientsvc.CreateParams{
			Name:    input.Body.Name,
			Email:   input.Body.Email,
			Phone:   input.Body.Phone,
			Company: input.Body.Company,
		})
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ClientCreateOutput{
			Location: Prefix + "/" + c.ID,
			Body:     toHTTPClient(c),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-clients",
		Method:      http.MethodGet,
		Path:        Prefix,
		Summary:     "List clients with cursor-based pagination",
		Description: "Returns clients ordered by creation time. Use the cursor from the Link header to navigate between pages.",
		Tags:        []string{"Clients"},
	}, func(ctx context.Context, input *ClientsListInput) (*ClientsListOutput, error) {
		cursor, err := pagination.DecodeCursor(input.Cursor)
		if err != nil {
			return nil, huma.Error400BadRequest("invalid cursor format")
		}

		all, err := svc.List(ctx)
		if err != nil {
			return nil, mapServiceError(err)
		}

		result, err := pagination.Paginate(all, pagination.Page[clientsvc.Client]{
			Cursor:     cursor,
			Limit:      input.PageLimit(),
			CursorType: cursorType,
			ID:         func(c clientsvc.Client) string { return c.ID },
			BaseURL:    Prefix,
		})
		if err != nil {
			return nil, huma.Error400BadRequest("cursor does not match this listing")
		}

		items := make([]Client, len(result.Items))
		for i := range result.Items {
			items[i] = toHTTPClient(&result.Items[i])
		}
		return &ClientsListOutput{
			Link: result.LinkHeader,
			Body: ClientsListData{Items: items, Total: result.Total},
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-client",
		Method:      http.MethodGet,
		Path:        Prefix + "/{clientId}",
		Summary:     "Get client",
		Tags:        []string{"Clients"},
	}, func(ctx context.Context, input *ClientGetInput) (*ClientGetOutput, error) {
		c, err := svc.Get(ctx, input.ClientID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ClientGetOutput{Body: toHTTPClient(c)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-client",
		Method:      http.MethodPatch,
		Path:        Prefix + "/{clientId}",
		Summary:     "Update client",
		Description: "Updates fields on a client. Only provided fields are updated.",
		Tags:        []string{"Clients"},
	}, func(ctx context.Context, input *ClientUpdateInput) (*ClientUpdateOutput, error) {
		params := clientsvc.UpdateParams{
			Name:    input.Body.Name,
			Email:   input.Body.Email,
			Phone:   input.Body.Phone,
			Company: input.Body.Company,
		}
		if params.Empty() {
			return nil, huma.Error422UnprocessableEntity("at least one field must be provided")
		}

		c, err := svc.Update(ctx, input.ClientID, params)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &ClientUpdateOutput{Body: toHTTPClient(c)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-client",
		Method:        http.MethodDelete,
		Path:          Prefix + "/{clientId}",
		Summary:       "Delete client",
		Description:   "Deletes a client that has no intakes or documents.",
		Tags:          []string{"Clients"},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *ClientDeleteInput) (*struct{}, error) {
		if err := svc.Delete(ctx, input.ClientID); err != nil {
			return nil, mapServiceError(err)
		}
		return nil, nil
	})
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, clientsvc.ErrNotFound):
		return huma.Error404NotFound("client not found")
	case errors.Is(err, clientsvc.ErrAlreadyExists):
		return huma.Error409Conflict("client with this email already exists")
	case errors.Is(err, clientsvc.ErrHasDependents):
		return huma.Error409Conflict("client still has intakes or documents")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}

func toHTTPClient(c *clientsvc.Client) Client {
	return Client{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Company:   c.Company,
		CreatedAt: timeutil.Time{Time: c.CreatedAt},
		UpdatedAt: timeutil.Time{Time: c.UpdatedAt},
	}
}
