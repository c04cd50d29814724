package odata

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	apperrors "github.com/umalmyha/dataverse/internal/errors"
)

// EnvelopeKey is the key list responses expose entities under
const EnvelopeKey = "value"

// DecodeMode selects how response body of a read is decoded
type DecodeMode int

const (
	// Typed decodes body into typed entity record
	Typed DecodeMode = iota
	// RawNonNull decodes body into generic mapping keeping only non-null values
	RawNonNull
)

func (m DecodeMode) String() string {
	switch m {
	case Typed:
		return "typed"
	case RawNonNull:
		return "raw-non-null"
	default:
		return fmt.Sprintf("DecodeMode(%d)", int(m))
	}
}

// Descriptor describes an entity kind: its id field, attribute schema and relationship bindings
type Descriptor struct {
	Kind       Kind
	IDField    string
	Attributes []string
	// Bindings maps navigation property to the kind it refers to
	Bindings map[string]Kind
}

func (d Descriptor) hasAttribute(name string) bool {
	for _, a := range d.Attributes {
		if a == name {
			return true
		}
	}
	return false
}

func (d Descriptor) check(key string, raw json.RawMessage) error {
	if nav, ok := ParseBindKey(key); ok {
		target, declared := d.Bindings[nav]
		if !declared {
			return fmt.Errorf("%s has no relationship %q", d.Kind, nav)
		}

		var path string
		if err := json.Unmarshal(raw, &path); err != nil {
			return fmt.Errorf("value of %s must be a resource path", key)
		}

		k, _, err := ParseBindPath(path)
		if err != nil {
			return err
		}
		if k != target {
			return fmt.Errorf("%s must refer to %s, got %s", key, target, k)
		}
		return nil
	}

	if !d.hasAttribute(key) {
		return fmt.Errorf("%s has no attribute %q", d.Kind, key)
	}
	return nil
}

// Codec maps entity payloads to and from wire JSON for a single kind
type Codec struct {
	desc Descriptor
}

// NewCodec builds Codec for descriptor
func NewCodec(d Descriptor) Codec {
	return Codec{desc: d}
}

// Descriptor returns codec descriptor
func (c Codec) Descriptor() Descriptor {
	return c.desc
}

// Encode serializes only supplied attribute set of v.
// Every top-level key must be a declared attribute or bind key of a declared relationship.
func (c Codec) Encode(v any) ([]byte, error) {
	kind := c.desc.Kind.String()

	body, err := json.Marshal(v)
	if err != nil {
		return nil, apperrors.NewCodecError(kind, err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return nil, apperrors.NewCodecError(kind, errors.New("payload must be encoded as JSON object"))
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if err := c.desc.check(k, fields[k]); err != nil {
			return nil, apperrors.NewCodecError(kind, err)
		}
	}
	return body, nil
}

// DecodeOne parses body into typed record E, absent attributes stay zero
func DecodeOne[E any](kind Kind, body []byte) (E, error) {
	var e E
	if !isObject(body) {
		return e, apperrors.NewCodecError(kind.String(), errors.New("body is not a JSON object"))
	}

	if err := json.Unmarshal(body, &e); err != nil {
		return e, apperrors.NewCodecError(kind.String(), err)
	}
	return e, nil
}

// DecodeMany parses envelope and returns sequence under EnvelopeKey.
// Empty sequence is returned as empty non-nil slice.
func DecodeMany[E any](kind Kind, body []byte) ([]E, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, apperrors.NewCodecError(kind.String(), err)
	}

	if envelope == nil {
		return nil, apperrors.NewMalformedEnvelopeError(kind.String(), "envelope is null")
	}

	raw, ok := envelope[EnvelopeKey]
	if !ok {
		return nil, apperrors.NewMalformedEnvelopeError(kind.String(), fmt.Sprintf("key %q is absent", EnvelopeKey))
	}

	if !isArray(raw) {
		return nil, apperrors.NewMalformedEnvelopeError(kind.String(), fmt.Sprintf("key %q holds no sequence", EnvelopeKey))
	}

	entities := make([]E, 0)
	if err := json.Unmarshal(raw, &entities); err != nil {
		return nil, apperrors.NewCodecError(kind.String(), err)
	}
	return entities, nil
}

// Projection is a generic view of entity keeping only non-null values
type Projection map[string]any

// Indent re-serializes projection with stable key order and indentation
// HTML characters are kept as is.
func (p Projection) Indent() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")

	if err := enc.Encode(p); err != nil {
		return nil, apperrors.NewCodecError("", err)
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// String returns indented form of projection
func (p Projection) String() string {
	out, err := p.Indent()
	if err != nil {
		return err.Error()
	}
	return string(out)
}

// DecodeNonNull parses body as generic mapping and drops keys holding null
func DecodeNonNull(body []byte) (Projection, error) {
	return decodeNonNull("", body)
}

func decodeNonNull(kind Kind, body []byte) (Projection, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var values map[string]any
	if err := dec.Decode(&values); err != nil {
		return nil, apperrors.NewCodecError(kind.String(), err)
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, apperrors.NewCodecError(kind.String(), errors.New("body holds data after top-level value"))
	}

	if values == nil {
		return nil, apperrors.NewCodecError(kind.String(), errors.New("body is not a JSON object"))
	}

	p := make(Projection, len(values))
	for k, v := range values {
		if v != nil {
			p[k] = v
		}
	}
	return p, nil
}

// Decoded is result of a read decoded in one of modes
type Decoded[E any] struct {
	Mode       DecodeMode
	Entity     E
	Projection Projection
}

// Decode decodes body according to mode
func Decode[E any](kind Kind, mode DecodeMode, body []byte) (Decoded[E], error) {
	switch mode {
	case Typed:
		e, err := DecodeOne[E](kind, body)
		if err != nil {
			return Decoded[E]{}, err
		}
		return Decoded[E]{Mode: Typed, Entity: e}, nil
	case RawNonNull:
		p, err := decodeNonNull(kind, body)
		if err != nil {
			return Decoded[E]{}, err
		}
		return Decoded[E]{Mode: RawNonNull, Projection: p}, nil
	default:
		return Decoded[E]{}, apperrors.NewCodecError(kind.String(), fmt.Errorf("unsupported decode mode %s", mode))
	}
}

func isObject(b []byte) bool {
	return strings.HasPrefix(strings.TrimSpace(string(b)), "{")
}

func isArray(b []byte) bool {
	return strings.HasPrefix(strings.TrimSpace(string(b)), "[")
}
