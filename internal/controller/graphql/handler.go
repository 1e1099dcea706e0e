// Package graphqlctl serves the logs GraphQL schema over echo.
package graphqlctl

import (
	_ "embed"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/99designs/gqlgen/graphql/playground"
	"github.com/Camping-RSO/camping-logs-ms/internal/metrics"
	"github.com/Camping-RSO/camping-logs-ms/internal/service"
	errorsUtils "github.com/Camping-RSO/camping-logs-ms/pkg/errors"
	"github.com/graph-gophers/graphql-go"
	gqlerrors "github.com/graph-gophers/graphql-go/errors"
	"github.com/labstack/echo/v4"
)

const (
	Endpoint = "/graphql"

	mimeApplicationGraphQL = "application/graphql"
	playgroundTitle        = "camping logs"
)

//go:embed schema.graphql
var schemaSDL string

type Handler struct {
	schema     *graphql.Schema
	playground http.Handler
}

type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

func NewHandler(ls service.Log, cnt *metrics.Counters) (*Handler, error) {
	schema, err := graphql.ParseSchema(schemaSDL, NewResolver(ls, cnt))
	if err != nil {
		return nil, errorsUtils.WrapPathErr(err)
	}
	return &Handler{
		schema:     schema,
		playground: playground.Handler(playgroundTitle, Endpoint),
	}, nil
}

// Execute runs a query or mutation. The response is always 200 with the
// standard envelope; only an undecodable body is a 400, still in the envelope.
func (h *Handler) Execute(c echo.Context) error {
	req, err := decodeRequest(c.Request())
	if err != nil {
		return c.JSON(http.StatusBadRequest, &graphql.Response{
			Errors: []*gqlerrors.QueryError{gqlerrors.Errorf("invalid graphql request: %v", err)},
		})
	}

	resp := h.schema.Exec(c.Request().Context(), req.Query, req.OperationName, req.Variables)

	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) Playground(c echo.Context) error {
	return echo.WrapHandler(h.playground)(c)
}

// decodeRequest takes an application/graphql body as the raw query and
// anything else as the JSON request object.
func decodeRequest(r *http.Request) (request, error) {
	var req request

	if strings.HasPrefix(r.Header.Get(echo.HeaderContentType), mimeApplicationGraphQL) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return req, err
		}
		req.Query = string(body)
		return req, nil
	}

	err := json.NewDecoder(r.Body).Decode(&req)
	return req, err
}
