package odata

import (
	"encoding/json"
	"fmt"
	"strings"
)

const bindSuffix = "@odata.bind"

// Bind references an entity by relative resource path.
// It is written under {navigationProperty}@odata.bind key.
type Bind struct {
	Kind Kind   `validate:"required"`
	ID   string `validate:"required"`
}

// BindTo builds Bind to entity of kind with id
func BindTo(k Kind, id string) Bind {
	return Bind{Kind: k, ID: id}
}

// Path returns /{collection}({id})
func (b Bind) Path() string {
	return ItemPath(b.Kind, b.ID)
}

func (b Bind) MarshalJSON() ([]byte, error) {
	if !b.Kind.Valid() {
		return nil, fmt.Errorf("bind to unknown kind %q", b.Kind)
	}
	if b.ID == "" {
		return nil, fmt.Errorf("bind to %s without id", b.Kind)
	}
	return json.Marshal(b.Path())
}

// BindKey returns {nav}@odata.bind
func BindKey(nav string) string {
	return nav + bindSuffix
}

// ParseBindKey returns navigation property of a bind key
func ParseBindKey(key string) (string, bool) {
	if !strings.HasSuffix(key, bindSuffix) {
		return "", false
	}
	nav := strings.TrimSuffix(key, bindSuffix)
	return nav, nav != ""
}

// ParseBindPath splits /{collection}({id}) into kind and id
func ParseBindPath(path string) (Kind, string, error) {
	if !strings.HasPrefix(path, "/") {
		return "", "", fmt.Errorf("bind path %q is not relative resource path", path)
	}

	open := strings.Index(path, "(")
	if open < 0 || !strings.HasSuffix(path, ")") {
		return "", "", fmt.Errorf("bind path %q is not in /{collection}({id}) shape", path)
	}

	k, ok := KindOfCollection(path[1:open])
	if !ok {
		return "", "", fmt.Errorf("bind path %q refers to unknown collection", path)
	}

	id := path[open+1 : len(path)-1]
	if id == "" {
		return "", "", fmt.Errorf("bind path %q has empty id", path)
	}
	return k, id, nil
}
