package repository

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
	apperrors "github.com/umalmyha/dataverse/internal/errors"
	"github.com/umalmyha/dataverse/internal/odata"
)

const (
	opCreate = "create"
	opRead   = "read"
	opUpdate = "update"
	opLink   = "link"
	opDelete = "delete"
)

const (
	headerAuthorization = "Authorization"
	headerContentType   = "Content-Type"
	headerAccept        = "Accept"
	headerLocation      = "Location"
	contentTypeJSON     = "application/json; charset=utf-8"
)

// HTTPDoer exchanges single HTTP request/response, *http.Client implements it
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Config is repository configuration
type Config struct {
	BaseURL string
}

// EntityRepository is CRUD contract shared by all entity kinds.
// N is create input, P is patch input, E is read model.
type EntityRepository[E any, N any, P any] interface {
	Create(context.Context, N, string) (string, error)
	GetByID(context.Context, string, *odata.Expand, string) (E, error)
	GetRawByID(context.Context, string, *odata.Expand, string) (odata.Projection, error)
	Read(context.Context, string, *odata.Expand, odata.DecodeMode, string) (odata.Decoded[E], error)
	GetAll(context.Context, *odata.Expand, string) ([]E, error)
	Update(context.Context, string, P, string) error
	Delete(context.Context, string, string) error
}

type entityRepository[E any, N any, P any] struct {
	client HTTPDoer
	addr   odata.Addresser
	codec  odata.Codec
}

func newEntityRepository[E any, N any, P any](client HTTPDoer, cfg Config, desc odata.Descriptor) *entityRepository[E, N, P] {
	return &entityRepository[E, N, P]{
		client: client,
		addr:   odata.NewAddresser(cfg.BaseURL),
		codec:  odata.NewCodec(desc),
	}
}

func (r *entityRepository[E, N, P]) kind() odata.Kind {
	return r.codec.Descriptor().Kind
}

// Create posts new entity and returns id extracted from Location header
func (r *entityRepository[E, N, P]) Create(ctx context.Context, n N, token string) (string, error) {
	if token == "" {
		return "", apperrors.ErrMissingToken
	}

	body, err := r.codec.Encode(n)
	if err != nil {
		return "", err
	}

	res, err := r.exchange(ctx, opCreate, "", http.MethodPost, r.addr.CollectionURL(r.kind()), body, token)
	if err != nil {
		return "", err
	}

	location := res.header.Get(headerLocation)
	if location == "" {
		return "", apperrors.NewUnexpectedResponseShapeError(opCreate, r.kind().String(), "Location header is absent")
	}

	id, err := odata.ParseLocation(location)
	if err != nil {
		return "", apperrors.NewUnexpectedResponseShapeError(opCreate, r.kind().String(), err.Error())
	}
	return id, nil
}

// GetByID reads entity and decodes it into typed record
func (r *entityRepository[E, N, P]) GetByID(ctx context.Context, id string, expand *odata.Expand, token string) (E, error) {
	d, err := r.Read(ctx, id, expand, odata.Typed, token)
	if err != nil {
		var e E
		return e, err
	}
	return d.Entity, nil
}

// GetRawByID reads entity and returns everything server returned except null values
func (r *entityRepository[E, N, P]) GetRawByID(ctx context.Context, id string, expand *odata.Expand, token string) (odata.Projection, error) {
	d, err := r.Read(ctx, id, expand, odata.RawNonNull, token)
	if err != nil {
		return nil, err
	}
	return d.Projection, nil
}

// Read reads entity and decodes it according to mode
func (r *entityRepository[E, N, P]) Read(ctx context.Context, id string, expand *odata.Expand, mode odata.DecodeMode, token string) (odata.Decoded[E], error) {
	res, err := r.exchange(ctx, opRead, id, http.MethodGet, r.addr.ItemURLExpanded(r.kind(), id, expand), nil, token)
	if err != nil {
		return odata.Decoded[E]{}, err
	}
	return odata.Decode[E](r.kind(), mode, res.body)
}

// GetAll reads whole collection
func (r *entityRepository[E, N, P]) GetAll(ctx context.Context, expand *odata.Expand, token string) ([]E, error) {
	res, err := r.exchange(ctx, opRead, "", http.MethodGet, r.addr.CollectionURLExpanded(r.kind(), expand), nil, token)
	if err != nil {
		return nil, err
	}
	return odata.DecodeMany[E](r.kind(), res.body)
}

// Update patches only supplied attributes, response body is ignored
func (r *entityRepository[E, N, P]) Update(ctx context.Context, id string, p P, token string) error {
	return r.patch(ctx, opUpdate, id, p, token)
}

// Delete deletes entity
func (r *entityRepository[E, N, P]) Delete(ctx context.Context, id string, token string) error {
	if token == "" {
		return apperrors.ErrMissingToken
	}

	_, err := r.exchange(ctx, opDelete, id, http.MethodDelete, r.addr.ItemURL(r.kind(), id), nil, token)
	return err
}

func (r *entityRepository[E, N, P]) patch(ctx context.Context, op string, id string, payload any, token string) error {
	if token == "" {
		return apperrors.ErrMissingToken
	}

	body, err := r.codec.Encode(payload)
	if err != nil {
		return err
	}

	_, err = r.exchange(ctx, op, id, http.MethodPatch, r.addr.ItemURL(r.kind(), id), body, token)
	return err
}

type exchangeResult struct {
	status int
	header http.Header
	body   []byte
}

func (r *entityRepository[E, N, P]) exchange(ctx context.Context, op, id, method, url string, body []byte, token string) (*exchangeResult, error) {
	kind := r.kind().String()
	logger := logrus.WithFields(logrus.Fields{
		"kind":   kind,
		"op":     op,
		"method": method,
		"url":    url,
	})

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, apperrors.NewTransportError(op, kind, fmt.Errorf("failed to build request - %w", err))
	}

	req.Header.Set(headerAccept, "application/json")
	req.Header.Set("OData-MaxVersion", "4.0")
	req.Header.Set("OData-Version", "4.0")
	if body != nil {
		req.Header.Set(headerContentType, contentTypeJSON)
	}
	if token != "" {
		req.Header.Set(headerAuthorization, "Bearer "+token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		logger.Debugf("exchange failed - %v", err)
		return nil, apperrors.NewTransportError(op, kind, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.NewTransportError(op, kind, fmt.Errorf("failed to read response body - %w", err))
	}

	logger = logger.WithField("status", resp.StatusCode)
	if !isSuccess(resp.StatusCode) {
		logger.Debug("remote service rejected request")
		return nil, apperrors.NewRemoteRequestError(op, kind, id, resp.StatusCode, respBody)
	}
	logger.Debug("exchange completed")

	return &exchangeResult{status: resp.StatusCode, header: resp.Header, body: respBody}, nil
}

func isSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}
