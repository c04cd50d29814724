package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"unicode/utf8"
)

// MaxBodyExcerpt is the maximum number of bytes of a response body kept in RemoteRequestError
const MaxBodyExcerpt = 512

// ErrMissingToken is returned when an authenticated operation is called without bearer token
var ErrMissingToken = errors.New("bearer token is required for this operation")

// TransportError means the exchange with remote service could not complete
type TransportError struct {
	Operation string
	Kind      string
	Err       error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: transport failure - %v", e.Operation, e.Kind, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func (e *TransportError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Type      string `json:"type"`
		Operation string `json:"operation"`
		Kind      string `json:"kind"`
		Message   string `json:"message"`
	}{Type: "transport", Operation: e.Operation, Kind: e.Kind, Message: e.Err.Error()})
}

// NewTransportError builds TransportError
func NewTransportError(operation, kind string, err error) *TransportError {
	return &TransportError{Operation: operation, Kind: kind, Err: err}
}

// RemoteRequestError means remote service responded with non-success status
type RemoteRequestError struct {
	Operation   string
	Kind        string
	ID          string
	StatusCode  int
	BodyExcerpt string
}

func (e *RemoteRequestError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("failed to %s %s %s, status code %d: %s", e.Operation, e.Kind, e.ID, e.StatusCode, e.BodyExcerpt)
	}
	return fmt.Sprintf("failed to %s %s, status code %d: %s", e.Operation, e.Kind, e.StatusCode, e.BodyExcerpt)
}

func (e *RemoteRequestError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Type        string `json:"type"`
		Operation   string `json:"operation"`
		Kind        string `json:"kind"`
		ID          string `json:"id,omitempty"`
		StatusCode  int    `json:"statusCode"`
		BodyExcerpt string `json:"bodyExcerpt"`
	}{
		Type:        "remote",
		Operation:   e.Operation,
		Kind:        e.Kind,
		ID:          e.ID,
		StatusCode:  e.StatusCode,
		BodyExcerpt: e.BodyExcerpt,
	})
}

// NewRemoteRequestError builds RemoteRequestError, body is truncated to MaxBodyExcerpt
func NewRemoteRequestError(operation, kind, id string, statusCode int, body []byte) *RemoteRequestError {
	return &RemoteRequestError{
		Operation:   operation,
		Kind:        kind,
		ID:          id,
		StatusCode:  statusCode,
		BodyExcerpt: Excerpt(body),
	}
}

// UnexpectedResponseShapeError means success status, but response violates the contract
type UnexpectedResponseShapeError struct {
	Operation string
	Kind      string
	Detail    string
}

func (e *UnexpectedResponseShapeError) Error() string {
	return fmt.Sprintf("%s %s: unexpected response shape - %s", e.Operation, e.Kind, e.Detail)
}

func (e *UnexpectedResponseShapeError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Type      string `json:"type"`
		Operation string `json:"operation"`
		Kind      string `json:"kind"`
		Detail    string `json:"detail"`
	}{Type: "shape", Operation: e.Operation, Kind: e.Kind, Detail: e.Detail})
}

// NewUnexpectedResponseShapeError builds UnexpectedResponseShapeError
func NewUnexpectedResponseShapeError(operation, kind, detail string) *UnexpectedResponseShapeError {
	return &UnexpectedResponseShapeError{Operation: operation, Kind: kind, Detail: detail}
}

// CodecError means body could not be encoded or decoded
type CodecError struct {
	Kind string
	Err  error
}

func (e *CodecError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("codec failure - %v", e.Err)
	}
	return fmt.Sprintf("codec failure for %s - %v", e.Kind, e.Err)
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

func (e *CodecError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Type    string `json:"type"`
		Kind    string `json:"kind,omitempty"`
		Message string `json:"message"`
	}{Type: "codec", Kind: e.Kind, Message: e.Err.Error()})
}

// NewCodecError builds CodecError
func NewCodecError(kind string, err error) *CodecError {
	return &CodecError{Kind: kind, Err: err}
}

// MalformedEnvelopeError means list response lacks the data key or it holds no sequence
type MalformedEnvelopeError struct {
	Kind   string
	Reason string
}

func (e *MalformedEnvelopeError) Error() string {
	return fmt.Sprintf("malformed %s envelope - %s", e.Kind, e.Reason)
}

func (e *MalformedEnvelopeError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Type   string `json:"type"`
		Kind   string `json:"kind"`
		Reason string `json:"reason"`
	}{Type: "envelope", Kind: e.Kind, Reason: e.Reason})
}

// NewMalformedEnvelopeError builds MalformedEnvelopeError
func NewMalformedEnvelopeError(kind, reason string) *MalformedEnvelopeError {
	return &MalformedEnvelopeError{Kind: kind, Reason: reason}
}

// Excerpt truncates body to MaxBodyExcerpt bytes without splitting a rune
func Excerpt(body []byte) string {
	if len(body) <= MaxBodyExcerpt {
		return string(body)
	}

	cut := MaxBodyExcerpt
	for cut > 0 && !utf8.RuneStart(body[cut]) {
		cut--
	}
	return string(body[:cut]) + "..."
}
