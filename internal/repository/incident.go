package repository

import (
	"github.com/umalmyha/dataverse/internal/model"
	"github.com/umalmyha/dataverse/internal/odata"
)

// IncidentCustomerAccountNav is navigation property of incident customer account
const IncidentCustomerAccountNav = "customerid_account"

// IncidentDescriptor describes incident entity kind.
// emailaddress is the incident own attribute, emailaddress1 is not accepted.
var IncidentDescriptor = odata.Descriptor{
	Kind:       odata.KindIncident,
	IDField:    "incidentid",
	Attributes: []string{"title", "description", "emailaddress", "statuscode", "prioritycode"},
	Bindings: map[string]odata.Kind{
		IncidentCustomerAccountNav: odata.KindAccount,
	},
}

// IncidentRepository is repository of incidents
type IncidentRepository interface {
	EntityRepository[model.Incident, model.NewIncident, model.IncidentPatch]
}

// NewIncidentRepository builds IncidentRepository
func NewIncidentRepository(client HTTPDoer, cfg Config) IncidentRepository {
	return newEntityRepository[model.Incident, model.NewIncident, model.IncidentPatch](client, cfg, IncidentDescriptor)
}
