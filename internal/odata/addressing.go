// Package odata builds resource addresses and encodes/decodes entity payloads
// following the OData conventions of the remote data service.
package odata

import (
	"strings"
)

// Kind is entity kind
type Kind string

const (
	// KindAccount is account entity kind
	KindAccount Kind = "account"
	// KindContact is contact entity kind
	KindContact Kind = "contact"
	// KindIncident is incident (case) entity kind
	KindIncident Kind = "incident"
)

var collections = map[Kind]string{
	KindAccount:  "accounts",
	KindContact:  "contacts",
	KindIncident: "incidents",
}

// Collection returns collection name of the kind or empty string for unknown kind
func (k Kind) Collection() string {
	return collections[k]
}

// Valid reports whether kind belongs to the closed set of kinds
func (k Kind) Valid() bool {
	_, ok := collections[k]
	return ok
}

func (k Kind) String() string {
	return string(k)
}

// KindOfCollection resolves kind by collection name
func KindOfCollection(collection string) (Kind, bool) {
	for k, c := range collections {
		if c == collection {
			return k, true
		}
	}
	return "", false
}

// Expand requests eager loading of related entity selected fields
type Expand struct {
	Nav    string
	Select []string
}

// NewExpand builds Expand for navigation property and selected fields
func NewExpand(nav string, fields ...string) *Expand {
	return &Expand{Nav: nav, Select: fields}
}

func (e *Expand) query() string {
	var b strings.Builder
	b.WriteString("?$expand=")
	b.WriteString(e.Nav)
	if len(e.Select) > 0 {
		b.WriteString("($select=")
		b.WriteString(strings.Join(e.Select, ","))
		b.WriteString(")")
	}
	return b.String()
}

// Addresser builds resource URLs relative to service base endpoint.
// Identifiers are inserted verbatim.
type Addresser struct {
	base string
}

// NewAddresser builds Addresser, trailing slashes of base are dropped
func NewAddresser(base string) Addresser {
	return Addresser{base: strings.TrimRight(base, "/")}
}

// Base returns base endpoint
func (a Addresser) Base() string {
	return a.base
}

// CollectionURL returns {base}/{collection}
func (a Addresser) CollectionURL(k Kind) string {
	return a.base + "/" + k.Collection()
}

// ItemURL returns {base}/{collection}({id})
func (a Addresser) ItemURL(k Kind, id string) string {
	return a.base + ItemPath(k, id)
}

// ItemURLExpanded returns item url with $expand query
func (a Addresser) ItemURLExpanded(k Kind, id string, e *Expand) string {
	if e == nil {
		return a.ItemURL(k, id)
	}
	return a.ItemURL(k, id) + e.query()
}

// CollectionURLExpanded returns collection url with $expand query
func (a Addresser) CollectionURLExpanded(k Kind, e *Expand) string {
	if e == nil {
		return a.CollectionURL(k)
	}
	return a.CollectionURL(k) + e.query()
}

// ItemPath returns relative resource path /{collection}({id})
func ItemPath(k Kind, id string) string {
	return "/" + k.Collection() + "(" + id + ")"
}
