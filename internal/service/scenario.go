package service

import (
	"github.com/umalmyha/dataverse/internal/model"
)

// Scenario holds inputs of a demo run.
// Incident customer is bound to the account created by the run.
type Scenario struct {
	Account        model.NewAccount
	Contact        model.NewContact
	ContactUpdate  model.ContactPatch
	Incident       model.NewIncident
	IncidentUpdate model.IncidentPatch
}

// DefaultScenario returns scenario of the reference workflow
func DefaultScenario() Scenario {
	return Scenario{
		Account: model.NewAccount{
			Name:  "NewAccount",
			Email: "new@account.com",
			Phone: "111111-1111",
		},
		Contact: model.NewContact{
			FirstName: "Test",
			LastName:  "Contact",
			Email:     "contact@test.com",
		},
		ContactUpdate: model.ContactPatch{
			Email: model.Ptr("update@test2.com"),
		},
		Incident: model.NewIncident{
			Title:       "Test Case",
			Description: "Creating test case",
			StatusCode:  model.IncidentStatusNew,
		},
		IncidentUpdate: model.IncidentPatch{
			StatusCode: model.Ptr(model.IncidentStatusResolved),
			Email:      model.Ptr("updated@case.com"),
		},
	}
}
