package clients

// ClientCreateOutput for POST /clients (201 Created)
type ClientCreateOutput struct {
	Location string `header:"Location" doc:"URL of created client"`
	Body     Client
}

// ClientGetOutput for GET /clients/{clientId}
type ClientGetOutput struct {
	Body Client
}

// ClientUpdateOutput for PATCH /clients/{clientId}
type ClientUpdateOutput struct {
	Body Client
}

// ClientsListData is the response body containing paginated clients.
type ClientsListData struct {
	Items []Client `json:"items" doc:"List of clients"`
	Total int      `json:"total" doc:"Total count of clients" example:"42"`
}

// ClientsListOutput is the response wrapper with pagination Link header.
type ClientsListOutput struct {
	Link string `header:"Link" doc:"RFC 8288 pagination links"`
	Body ClientsListData
}
