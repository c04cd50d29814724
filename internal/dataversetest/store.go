package dataversetest

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/umalmyha/dataverse/internal/odata"
)

type record map[string]any

func (r record) clone() record {
	c := make(record, len(r))
	for k, v := range r {
		c[k] = v
	}
	return c
}

// odataError is failure reported to the client in OData error shape
type odataError struct {
	status  int
	code    string
	message string
}

func (e *odataError) Error() string {
	return e.message
}

func badRequest(format string, args ...any) *odataError {
	return &odataError{status: http.StatusBadRequest, code: "0x80060888", message: fmt.Sprintf(format, args...)}
}

func notFound(kind odata.Kind, id string) *odataError {
	return &odataError{
		status:  http.StatusNotFound,
		code:    "0x80040217",
		message: fmt.Sprintf("%s With Id = %s Does Not Exist", kind, id),
	}
}

type store struct {
	records map[odata.Kind]map[string]record
	order   map[odata.Kind][]string
	seq     int
}

func newStore() *store {
	s := &store{
		records: make(map[odata.Kind]map[string]record),
		order:   make(map[odata.Kind][]string),
	}
	for k := range schemas {
		s.records[k] = make(map[string]record)
	}
	return s
}

func (s *store) create(kind odata.Kind, attrs map[string]any) (string, error) {
	sch := schemas[kind]

	rec := make(record)
	for k, v := range sch.defaults {
		rec[k] = v
	}
	if err := s.apply(kind, rec, attrs); err != nil {
		return "", err
	}

	id := uuid.NewString()
	rec[sch.idField] = id

	s.seq++
	if sch.derive != nil {
		sch.derive(rec, s.seq)
	}

	s.records[kind][id] = rec
	s.order[kind] = append(s.order[kind], id)
	return id, nil
}

func (s *store) update(kind odata.Kind, id string, attrs map[string]any) error {
	rec, ok := s.records[kind][id]
	if !ok {
		return notFound(kind, id)
	}

	patched := rec.clone()
	if err := s.apply(kind, patched, attrs); err != nil {
		return err
	}

	sch := schemas[kind]
	if sch.derive != nil {
		sch.derive(patched, s.seq)
	}
	s.records[kind][id] = patched
	return nil
}

// apply validates attrs against schema and writes them into rec
func (s *store) apply(kind odata.Kind, rec record, attrs map[string]any) error {
	sch := schemas[kind]

	for key, value := range attrs {
		if nav, ok := odata.ParseBindKey(key); ok {
			b, declared := sch.bindings[nav]
			if !declared {
				return badRequest("An undeclared property '%s' which only has property annotations in the payload but no property value was found in the payload", nav)
			}

			path, ok := value.(string)
			if !ok {
				return badRequest("Value of %s must be a resource path", key)
			}

			target, targetID, err := odata.ParseBindPath(path)
			if err != nil {
				return badRequest("%s", err)
			}
			if target != b.target {
				return badRequest("Navigation property %s refers to %s, got %s", nav, b.target, target)
			}
			if _, exists := s.records[target][targetID]; !exists {
				return notFound(target, targetID)
			}

			rec[b.lookup] = targetID
			continue
		}

		if !sch.declares(key) {
			return badRequest("Invalid property '%s' was found in entity 'Microsoft.Dynamics.CRM.%s'", key, sch.entityName)
		}
		rec[key] = value
	}
	return nil
}

func (s *store) get(kind odata.Kind, id string) (record, error) {
	rec, ok := s.records[kind][id]
	if !ok {
		return nil, notFound(kind, id)
	}
	return rec, nil
}

func (s *store) list(kind odata.Kind) []record {
	recs := make([]record, 0, len(s.order[kind]))
	for _, id := range s.order[kind] {
		recs = append(recs, s.records[kind][id])
	}
	return recs
}

// delete removes record and clears lookups referring to it
func (s *store) delete(kind odata.Kind, id string) error {
	if _, ok := s.records[kind][id]; !ok {
		return notFound(kind, id)
	}

	delete(s.records[kind], id)
	ids := s.order[kind][:0]
	for _, existing := range s.order[kind] {
		if existing != id {
			ids = append(ids, existing)
		}
	}
	s.order[kind] = ids

	for k, sch := range schemas {
		for _, b := range sch.bindings {
			if b.target != kind {
				continue
			}
			for _, rec := range s.records[k] {
				if rec[b.lookup] == id {
					delete(rec, b.lookup)
				}
			}
		}
	}
	return nil
}

// render builds wire view of record: declared attributes are null-filled,
// navigation property is expanded when requested
func (s *store) render(kind odata.Kind, rec record, exp *expansion) (map[string]any, error) {
	sch := schemas[kind]

	out := make(map[string]any)
	out[sch.idField] = rec[sch.idField]
	for _, group := range [][]string{sch.attributes, sch.computed, sch.lookupFields()} {
		for _, attr := range group {
			out[attr] = rec[attr]
		}
	}
	out["@odata.etag"] = fmt.Sprintf(`W/"%d"`, len(rec))

	if exp == nil {
		return out, nil
	}

	b, ok := sch.bindings[exp.nav]
	if !ok {
		return nil, badRequest("Could not find a property named '%s' on type 'Microsoft.Dynamics.CRM.%s'", exp.nav, sch.entityName)
	}

	targetID, ok := rec[b.lookup].(string)
	if !ok {
		out[exp.nav] = nil
		return out, nil
	}

	target, err := s.get(b.target, targetID)
	if err != nil {
		out[exp.nav] = nil
		return out, nil
	}

	expanded, err := s.render(b.target, target, nil)
	if err != nil {
		return nil, err
	}
	if len(exp.selected) > 0 {
		targetSchema := schemas[b.target]
		selected := map[string]any{targetSchema.idField: expanded[targetSchema.idField]}
		for _, f := range exp.selected {
			v, known := expanded[f]
			if !known {
				return nil, badRequest("Could not find a property named '%s' on type 'Microsoft.Dynamics.CRM.%s'", f, targetSchema.entityName)
			}
			selected[f] = v
		}
		expanded = selected
	}
	out[exp.nav] = expanded
	return out, nil
}

type expansion struct {
	nav      string
	selected []string
}

var errMalformedExpand = errors.New("malformed $expand")

// parseExpand parses nav or nav($select=a,b)
func parseExpand(raw string) (*expansion, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	open := strings.Index(raw, "(")
	if open < 0 {
		return &expansion{nav: raw}, nil
	}
	if open == 0 || !strings.HasSuffix(raw, ")") {
		return nil, errMalformedExpand
	}

	opts := raw[open+1 : len(raw)-1]
	if !strings.HasPrefix(opts, "$select=") {
		return nil, errMalformedExpand
	}

	fields := strings.Split(strings.TrimPrefix(opts, "$select="), ",")
	for _, f := range fields {
		if f == "" {
			return nil, errMalformedExpand
		}
	}
	return &expansion{nav: raw[:open], selected: fields}, nil
}
