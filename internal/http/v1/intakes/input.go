package intakes

import "github.com/teefour-ai/teefour-api/internal/platform/pagination"

// IntakeCreateInput for POST /intakes
type IntakeCreateInput struct {
	Body struct {
		ClientID string `json:"clientId"         minLength:"1"                    doc:"Owning client ID" example:"7d3c1c9e-5b1a-4b7e-9a51-2f0e6a4f1c2d"`
		TaxYear  int    `json:"taxYear"          minimum:"2000" maximum:"2100"    doc:"Tax year"         example:"2025"`
		Status   string `json:"status,omitempty" enum:"open,in_progress,completed" doc:"Initial status; defaults to open" example:"open"`
		Notes    string `json:"notes,omitempty"  maxLength:"2000"                 doc:"Free-form notes"  example:"Waiting for the W-2"`
	}
}

// IntakesListInput for GET /intakes
type IntakesListInput struct {
	pagination.Params
	ClientID string `query:"clientId" doc:"Filter by client"`
	Status   string `query:"status"   doc:"Filter by status" enum:"open,in_progress,completed"`
}

// IntakeGetInput for GET /intakes/{intakeId}
type IntakeGetInput struct {
	IntakeID string `path:"intakeId" doc:"Intake ID"`
}

// IntakeUpdateInput for PATCH /intakes/{intakeId}
type IntakeUpdateInput struct {
	IntakeID string `path:"intakeId" doc:"Intake ID"`
	Body     struct {
		Status *string `json:"status,omitempty" enum:"open,in_progress,completed" doc:"New status"      example:"in_progress"`
		Notes  *string `json:"notes,omitempty"  maxLength:"2000"                 doc:"Free-form notes" example:"All receipts received"`
	}
}

// IntakeDeleteInput for DELETE /intakes/{intakeId}
type IntakeDeleteInput struct {
	IntakeID string `path:"intakeId" doc:"Intake ID"`
}
