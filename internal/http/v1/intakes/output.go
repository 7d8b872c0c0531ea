package intakes

// IntakeCreateOutput for POST /intakes (201 Created)
type IntakeCreateOutput struct {
	Location string `header:"Location" doc:"URL of created intake"`
	Body     Intake
}

// IntakeGetOutput for GET /intakes/{intakeId}
type IntakeGetOutput struct {
	Body Intake
}

// IntakeUpdateOutput for PATCH /intakes/{intakeId}
type IntakeUpdateOutput struct {
	Body Intake
}

// IntakesListData is the response body containing paginated intakes.
type IntakesListData struct {
	Items []Intake `json:"items" doc:"List of intakes"`
	Total int      `json:"total" doc:"Total count of intakes matching the filter" example:"7"`
}

// IntakesListOutput is the response wrapper with pagination Link header.
type IntakesListOutput struct {
	Link string `header:"Link" doc:"RFC 8288 pagination links"`
	Body IntakesListData
}
