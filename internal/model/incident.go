package model

import "github.com/umalmyha/dataverse/internal/odata"

// IncidentStatus is status reason of incident
type IncidentStatus int

const (
	// IncidentStatusNew means incident has just been opened
	IncidentStatusNew IncidentStatus = iota + 1
	// IncidentStatusInProgress means incident is being worked on
	IncidentStatusInProgress
	// IncidentStatusOnHold means incident is waiting
	IncidentStatusOnHold
	// IncidentStatusResolved means incident is resolved
	IncidentStatusResolved
)

// IncidentPriority is priority of incident
type IncidentPriority int

const (
	// IncidentPriorityHigh is high priority
	IncidentPriorityHigh IncidentPriority = iota + 1
	// IncidentPriorityNormal is normal priority
	IncidentPriorityNormal
	// IncidentPriorityLow is low priority
	IncidentPriorityLow
)

// Incident is incident (case) entity.
// Its email attribute is emailaddress, unlike emailaddress1 of accounts and contacts.
type Incident struct {
	ID              string           `json:"incidentid"`
	TicketNumber    string           `json:"ticketnumber"`
	Title           string           `json:"title"`
	Description     string           `json:"description"`
	Email           string           `json:"emailaddress"`
	StatusCode      IncidentStatus   `json:"statuscode"`
	PriorityCode    IncidentPriority `json:"prioritycode"`
	CreatedOn       string           `json:"createdon"`
	CustomerID      *string          `json:"_customerid_value"`
	CustomerAccount *Account         `json:"customerid_account,omitempty"`
}

// NewIncident holds attributes of incident to be created.
// Customer is written by reference as customerid_account@odata.bind.
type NewIncident struct {
	Title        string           `json:"title" validate:"required"`
	Description  string           `json:"description,omitempty"`
	Customer     odata.Bind       `json:"customerid_account@odata.bind"`
	StatusCode   IncidentStatus   `json:"statuscode,omitempty" validate:"omitempty,oneof=1 2 3 4"`
	PriorityCode IncidentPriority `json:"prioritycode,omitempty" validate:"omitempty,oneof=1 2 3"`
}

// IncidentPatch holds incident attributes to be updated, nil fields are not sent
type IncidentPatch struct {
	Title        *string           `json:"title,omitempty" validate:"omitempty,min=1"`
	Description  *string           `json:"description,omitempty"`
	Email        *string           `json:"emailaddress,omitempty" validate:"omitempty,email"`
	StatusCode   *IncidentStatus   `json:"statuscode,omitempty" validate:"omitempty,oneof=1 2 3 4"`
	PriorityCode *IncidentPriority `json:"prioritycode,omitempty" validate:"omitempty,oneof=1 2 3"`
}
