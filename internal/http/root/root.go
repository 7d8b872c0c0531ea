// Package root serves the API landing endpoint.
package root

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// WelcomeMessage is the fixed greeting returned by GET /.
const WelcomeMessage = "Welcome to TeeFour AI"

// Response is the landing payload.
type Response struct {
	Message string `json:"message"  doc:"Greeting"                      example:"Welcome to TeeFour AI"`
	DocsURL string `json:"docs_url" doc:"Path of the interactive API docs" example:"/docs"`
}

// Output for GET /
type Output struct {
	Body Response
}

// Register registers GET / pointing clients at docsURL.
func Register(api huma.API, docsURL string) {
	body := Response{Message: WelcomeMessage, DocsURL: docsURL}

	huma.Register(api, huma.Operation{
		OperationID: "get-root",
		Method:      http.MethodGet,
		Path:        "/",
		Summary:     "Welcome",
		Description: "Returns a greeting and the location of the API documentation.",
		Tags:        []string{"Root"},
	}, func(_ context.Context, _ *struct{}) (*Output, error) {
		return &Output{Body: body}, nil
	})
}
