package intakes

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/danielgtaylor/huma/v2"

	"github.com/teefour-ai/teefour-api/internal/platform/pagination"
	"github.com/teefour-ai/teefour-api/internal/platform/timeutil"
	intakesvc "github.com/teefour-ai/teefour-api/internal/service/intake"
)

const (
	// Prefix is the path prefix of the intakes group.
	Prefix     = "/intakes"
	cursorType = "intake"
)

// Group serves the intake endpoints under Prefix.
type Group struct {
	svc intakesvc.Service
}

// NewGroup creates the intakes route group.
func NewGroup(svc intakesvc.Service) *Group {
	return &Group{svc: svc}
}

func (g *Group) Prefix() string { return Prefix }

// Register registers intake endpoints.
func (g *Group) Register(api huma.API) {
	svc := g.svc

	huma.Register(api, huma.Operation{
		OperationID:   "create-intake",
		Method:        http.MethodPost,
		Path:          Prefix,
		Summary:       "Create intake",
		Description:   "Opens an intake for one client and tax year.",
		Tags:          []string{"Intakes"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *IntakeCreateInput) (*IntakeCreateOutput, error) {
		in, err := svc.Create(ctx, intakesvc.CreateParams{
			ClientID: input.Body.ClientID,
			TaxYear:  input.Body.TaxYear,
			Status:   intakesvc.Status(input.Body.Status),
			Notes:    input.Body.Notes,
		})
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &IntakeCreateOutput{
			Location: Prefix + "/" + in.ID,
			Body:     toHTTPIntake(in),
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-intakes",
		Method:      http.MethodGet,
		Path:        Prefix,
		Summary:     "List intakes with cursor-based pagination",
		Description: "Returns intakes ordered by creation time, optionally filtered by client and status.",
		Tags:        []string{"Intakes"},
	}, func(ctx context.Context, input *IntakesListInput) (*IntakesListOutput, error) {
		cursor, err := pagination.DecodeCursor(input.Cursor)
		if err != nil {
			return nil, huma.Error400BadRequest("invalid cursor format")
		}

		all, err := svc.List(ctx, intakesvc.ListFilter{
			ClientID: input.ClientID,
			Status:   intakesvc.Status(input.Status),
		})
		if err != nil {
			return nil, mapServiceError(err)
		}

		query := url.Values{}
		if input.ClientID != "" {
			query.Set("clientId", input.ClientID)
		}
		if input.Status != "" {
			query.Set("status", input.Status)
		}

		result, err := pagination.Paginate(all, pagination.Page[intakesvc.Intake]{
			Cursor:     cursor,
			Limit:      input.PageLimit(),
			CursorType: cursorType,
			ID:         func(in intakesvc.Intake) string { return in.ID },
			BaseURL:    Prefix,
			Query:      query,
		})
		if err != nil {
			return nil, huma.Error400BadRequest("cursor does not match this listing")
		}

		items := make([]Intake, len(result.Items))
		for i := range result.Items {
			items[i] = toHTTPIntake(&result.Items[i])
		}
		return &IntakesListOutput{
			Link: result.LinkHeader,
			Body: IntakesListData{Items: items, Total: result.Total},
		}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-intake",
		Method:      http.MethodGet,
		Path:        Prefix + "/{intakeId}",
		Summary:     "Get intake",
		Tags:        []string{"Intakes"},
	}, func(ctx context.Context, input *IntakeGetInput) (*IntakeGetOutput, error) {
		in, err := svc.Get(ctx, input.IntakeID)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &IntakeGetOutput{Body: toHTTPIntake(in)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-intake",
		Method:      http.MethodPatch,
		Path:        Prefix + "/{intakeId}",
		Summary:     "Update intake",
		Description: "Changes the status or notes of an intake.",
		Tags:        []string{"Intakes"},
	}, func(ctx context.Context, input *IntakeUpdateInput) (*IntakeUpdateOutput, error) {
		params := intakesvc.UpdateParams{Notes: input.Body.Notes}
		if input.Body.Status != nil {
			s := intakesvc.Status(*input.Body.Status)
			params.Status = &s
		}
		if params.Empty() {
			return nil, huma.Error422UnprocessableEntity("at least one field must be provided")
		}

		in, err := svc.Update(ctx, input.IntakeID, params)
		if err != nil {
			return nil, mapServiceError(err)
		}
		return &IntakeUpdateOutput{Body: toHTTPIntake(in)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-intake",
		Method:        http.MethodDelete,
		Path:          Prefix + "/{intakeId}",
		Summary:       "Delete intake",
		Description:   "Deletes an intake that has no documents.",
		Tags:          []string{"Intakes"},
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *IntakeDeleteInput) (*struct{}, error) {
		if err := svc.Delete(ctx, input.IntakeID); err != nil {
			return nil, mapServiceError(err)
		}
		return nil, nil
	})
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, intakesvc.ErrNotFound):
		return huma.Error404NotFound("intake not found")
	case errors.Is(err, intakesvc.ErrClientNotFound):
		return huma.Error422UnprocessableEntity("client does not exist")
	case errors.Is(err, intakesvc.ErrInvalidStatus):
		return huma.Error422UnprocessableEntity("invalid intake status")
	case errors.Is(err, intakesvc.ErrHasDependents):
		return huma.Error409Conflict("intake still has documents")
	default:
		return huma.Error500InternalServerError("internal error")
	}
}

func toHTTPIntake(in *intakesvc.Intake) Intake {
	return Intake{
		ID:        in.ID,
		ClientID:  in.ClientID,
		TaxYear:   in.TaxYear,
		Status:    string(in.Status),
		Notes:     in.Notes,
		CreatedAt: timeutil.Time{Time: in.CreatedAt},
		UpdatedAt: timeutil.Time{Time: in.UpdatedAt},
	}
}
