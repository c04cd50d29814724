package dataversetest

import (
	"fmt"
	"strings"
	"time"

	"github.com/umalmyha/dataverse/internal/odata"
)

type binding struct {
	target odata.Kind
	lookup string
}

type schema struct {
	entityName string
	idField    string
	attributes []string
	computed   []string
	bindings   map[string]binding
	defaults   map[string]any
	derive     func(rec record, seq int)
}

func (s schema) declares(attr string) bool {
	for _, a := range s.attributes {
		if a == attr {
			return true
		}
	}
	return false
}

var schemas = map[odata.Kind]schema{
	odata.KindAccount: {
		entityName: "account",
		idField:    "accountid",
		attributes: []string{"name", "emailaddress1", "telephone1", "address1_city"},
		bindings: map[string]binding{
			"primarycontactid": {target: odata.KindContact, lookup: "_primarycontactid_value"},
		},
	},
	odata.KindContact: {
		entityName: "contact",
		idField:    "contactid",
		attributes: []string{"firstname", "lastname", "emailaddress1", "telephone1", "company"},
		computed:   []string{"fullname"},
		derive: func(rec record, _ int) {
			var parts []string
			for _, attr := range []string{"firstname", "lastname"} {
				if v, ok := rec[attr].(string); ok && v != "" {
					parts = append(parts, v)
				}
			}
			if len(parts) == 0 {
				rec["fullname"] = nil
				return
			}
			rec["fullname"] = strings.Join(parts, " ")
		},
	},
	odata.KindIncident: {
		entityName: "incident",
		idField:    "incidentid",
		attributes: []string{"title", "description", "emailaddress", "statuscode", "prioritycode"},
		computed:   []string{"ticketnumber", "createdon"},
		bindings: map[string]binding{
			"customerid_account": {target: odata.KindAccount, lookup: "_customerid_value"},
		},
		defaults: map[string]any{"statuscode": 1, "prioritycode": 2},
		derive: func(rec record, seq int) {
			if _, ok := rec["ticketnumber"]; !ok {
				rec["ticketnumber"] = fmt.Sprintf("CAS-%05d-T0S7D", seq)
			}
			if _, ok := rec["createdon"]; !ok {
				rec["createdon"] = time.Now().UTC().Format(time.RFC3339)
			}
		},
	},
}

// lookupFields returns all lookup value fields of the schema
func (s schema) lookupFields() []string {
	fields := make([]string, 0, len(s.bindings))
	for _, b := range s.bindings {
		fields = append(fields, b.lookup)
	}
	return fields
}
