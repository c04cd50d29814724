// Package dataversetest provides in-process fake of the remote data service
// implementing the OData subset entity repositories rely on.
package dataversetest

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/umalmyha/dataverse/internal/auth"
	"github.com/umalmyha/dataverse/internal/odata"
)

const (
	// BasePath is path of the service endpoint
	BasePath = "/api/data/v9.2"
	// Audience is the resource tokens must be issued for
	Audience = "https://dataverse.test"

	tokenTimeToLive = time.Hour
	subject         = "integration-user"
)

// Request is recorded inbound request
type Request struct {
	Method        string
	Path          string
	RawQuery      string
	Authorization string
	Body          []byte
}

// Fault is forced response for requests of method to collection
type Fault struct {
	Status int
	Body   string
}

// Server is fake remote data service
type Server struct {
	echo     *echo.Echo
	srv      *httptest.Server
	issuer   *auth.JwtIssuer
	token    string
	mu       sync.Mutex
	store    *store
	requests []Request
	faults   map[string]Fault
}

// NewServer starts fake service, Token returns bearer token it accepts
func NewServer() (*Server, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate signing key - %w", err)
	}

	s := &Server{
		issuer: auth.NewJwtIssuer("dataversetest", Audience, tokenTimeToLive, priv),
		store:  newStore(),
		faults: make(map[string]Fault),
	}

	tkn, err := s.issuer.Sign(subject, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to issue token - %w", err)
	}
	s.token = tkn.Signed

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = httpErrorHandler

	grp := e.Group(BasePath, s.record, s.inject, Authorize(auth.NewJwtValidator(Audience, pub)))
	grp.POST("/:resource", s.post)
	grp.GET("/:resource", s.get)
	grp.PATCH("/:resource", s.patch)
	grp.DELETE("/:resource", s.delete)

	s.echo = e
	s.srv = httptest.NewServer(e)
	return s, nil
}

// BaseURL returns service endpoint, e.g. http://127.0.0.1:port/api/data/v9.2
func (s *Server) BaseURL() string {
	return s.srv.URL + BasePath
}

// Client returns HTTP client bound to the server
func (s *Server) Client() *http.Client {
	return s.srv.Client()
}

// Token returns valid bearer token
func (s *Server) Token() string {
	return s.token
}

// IssueToken issues token for subject issued at issuedAt
func (s *Server) IssueToken(subj string, issuedAt time.Time) (string, error) {
	tkn, err := s.issuer.Sign(subj, issuedAt)
	if err != nil {
		return "", err
	}
	return tkn.Signed, nil
}

// Close shuts the server down
func (s *Server) Close() {
	s.srv.Close()
}

// Requests returns copy of all recorded requests
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()

	reqs := make([]Request, len(s.requests))
	copy(reqs, s.requests)
	return reqs
}

// Fail forces status and body for all requests of method to collection of kind
func (s *Server) Fail(method string, kind odata.Kind, f Fault) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[faultKey(method, kind.Collection())] = f
}

// ClearFaults removes all forced responses
func (s *Server) ClearFaults() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults = make(map[string]Fault)
}

// Count returns number of stored entities of kind
func (s *Server) Count(kind odata.Kind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.store.records[kind])
}

// Entity returns stored attributes of entity
func (s *Server) Entity(kind odata.Kind, id string) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.store.records[kind][id]
	if !ok {
		return nil, false
	}
	return rec.clone(), true
}

// Seed stores entity bypassing the HTTP surface and returns its id
func (s *Server) Seed(kind odata.Kind, attrs map[string]any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.create(kind, attrs)
}

func faultKey(method, collection string) string {
	return strings.ToUpper(method) + " " + collection
}

func (s *Server) record(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()

		body, err := io.ReadAll(req.Body)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "failed to read body")
		}
		req.Body = io.NopCloser(strings.NewReader(string(body)))

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        req.Method,
			Path:          strings.TrimPrefix(req.URL.Path, BasePath),
			RawQuery:      req.URL.RawQuery,
			Authorization: req.Header.Get("Authorization"),
			Body:          body,
		})
		s.mu.Unlock()

		return next(c)
	}
}

func (s *Server) inject(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		collection, _, _ := splitResource(c.Param("resource"))

		s.mu.Lock()
		f, ok := s.faults[faultKey(c.Request().Method, collection)]
		s.mu.Unlock()

		if ok {
			return c.String(f.Status, f.Body)
		}
		return next(c)
	}
}

// splitResource splits accounts(id) into collection and id
func splitResource(resource string) (string, string, bool) {
	open := strings.Index(resource, "(")
	if open < 0 {
		return resource, "", false
	}
	if !strings.HasSuffix(resource, ")") {
		return resource, "", false
	}
	return resource[:open], resource[open+1 : len(resource)-1], true
}

func resolve(c echo.Context) (odata.Kind, string, bool, error) {
	collection, id, isItem := splitResource(c.Param("resource"))

	kind, ok := odata.KindOfCollection(collection)
	if !ok {
		return "", "", false, &odataError{
			status:  http.StatusNotFound,
			code:    "0x8006088a",
			message: fmt.Sprintf("Resource not found for the segment '%s'.", collection),
		}
	}

	if isItem && id == "" {
		return "", "", false, badRequest("Empty key in segment '%s'", c.Param("resource"))
	}
	return kind, id, isItem, nil
}

func decodeAttributes(c echo.Context) (map[string]any, error) {
	dec := json.NewDecoder(c.Request().Body)
	dec.UseNumber()

	var attrs map[string]any
	if err := dec.Decode(&attrs); err != nil {
		return nil, badRequest("Payload is not a JSON object - %v", err)
	}
	if attrs == nil {
		return nil, badRequest("Payload is not a JSON object")
	}
	return attrs, nil
}

func (s *Server) post(c echo.Context) error {
	kind, _, isItem, err := resolve(c)
	if err != nil {
		return err
	}
	if isItem {
		return &odataError{status: http.StatusMethodNotAllowed, code: "0x80060888", message: "POST is not supported on entity"}
	}

	attrs, err := decodeAttributes(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	id, err := s.store.create(kind, attrs)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	location := s.BaseURL() + odata.ItemPath(kind, id)
	c.Response().Header().Set("Location", location)
	c.Response().Header().Set("OData-EntityId", location)
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) get(c echo.Context) error {
	kind, id, isItem, err := resolve(c)
	if err != nil {
		return err
	}

	exp, err := parseExpand(c.QueryParam("$expand"))
	if err != nil {
		return badRequest("%v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if isItem {
		rec, err := s.store.get(kind, id)
		if err != nil {
			return err
		}

		out, err := s.store.render(kind, rec, exp)
		if err != nil {
			return err
		}
		out["@odata.context"] = fmt.Sprintf("%s/$metadata#%s/$entity", s.BaseURL(), kind.Collection())
		return c.JSON(http.StatusOK, out)
	}

	values := make([]map[string]any, 0)
	for _, rec := range s.store.list(kind) {
		out, err := s.store.render(kind, rec, exp)
		if err != nil {
			return err
		}
		values = append(values, out)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"@odata.context":  fmt.Sprintf("%s/$metadata#%s", s.BaseURL(), kind.Collection()),
		odata.EnvelopeKey: values,
	})
}

func (s *Server) patch(c echo.Context) error {
	kind, id, isItem, err := resolve(c)
	if err != nil {
		return err
	}
	if !isItem {
		return &odataError{status: http.StatusMethodNotAllowed, code: "0x80060888", message: "PATCH is not supported on collection"}
	}

	attrs, err := decodeAttributes(c)
	if err != nil {
		return err
	}

	s.mu.Lock()
	err = s.store.update(kind, id, attrs)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) delete(c echo.Context) error {
	kind, id, isItem, err := resolve(c)
	if err != nil {
		return err
	}
	if !isItem {
		return &odataError{status: http.StatusMethodNotAllowed, code: "0x80060888", message: "DELETE is not supported on collection"}
	}

	s.mu.Lock()
	err = s.store.delete(kind, id)
	s.mu.Unlock()
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	oerr := &odataError{status: http.StatusInternalServerError, code: "0x80040216", message: err.Error()}

	var target *odataError
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &target):
		oerr = target
	case errors.As(err, &httpErr):
		oerr = &odataError{status: httpErr.Code, code: "0x80040220", message: fmt.Sprint(httpErr.Message)}
	}

	_ = c.JSON(oerr.status, map[string]any{
		"error": map[string]string{
			"code":    oerr.code,
			"message": oerr.message,
		},
	})
}
