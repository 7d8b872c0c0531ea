package clients

import "github.com/teefour-ai/teefour-api/internal/platform/pagination"

// ClientCreateInput for POST /clients
type ClientCreateInput struct {
	Body struct {
		Name    string `json:"name"              minLength:"1" maxLength:"200" doc:"Full name"     example:"Ada Lovelace"`
		Email   string `json:"email"             format:"email" maxLength:"320" doc:"Email address" example:"ada@example.com"`
		Phone   string `json:"phone,omitempty"   maxLength:"32"                 doc:"Phone number"  example:"+358401234567"`
		Company string `json:"company,omitempty" maxLength:"200"                doc:"Company name"  example:"Analytical Engines Oy"`
	}
}

// ClientsListInput for GET /clients
type ClientsListInput struct {
	pagination.Params
}

// ClientGetInput for GET /clients/{clientId}
type ClientGetInput struct {
	ClientID string `path:"clientId" doc:"Client ID"`
}

// ClientUpdateInput for PATCH /clients/{clientId}
type ClientUpdateInput struct {
	ClientID string `path:"clientId" doc:"Client ID"`
	Body     struct {
		Name    *string `json:"name,omitempty"    minLength:"1" maxLength:"200" doc:"Full name"     example:"Ada Lovelace"`
		Email   *string `json:"email,omitempty"   format:"email" maxLength:"320" doc:"Email address" example:"ada@example.com"`
		Phone   *string `json:"phone,omitempty"   maxLength:"32"                 doc:"Phone number"  example:"+358401234567"`
		Company *string `json:"company,omitempty" maxLength:"200"                doc:"Company name"  example:"Analytical Engines Oy"`
	}
}

// ClientDeleteInput for DELETE /clients/{clientId}
type ClientDeleteInput struct {
	ClientID string `path:"clientId" doc:"Client ID"`
}
