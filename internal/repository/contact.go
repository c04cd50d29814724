package repository

import (
	"github.com/umalmyha/dataverse/internal/model"
	"github.com/umalmyha/dataverse/internal/odata"
)

// ContactDescriptor describes contact entity kind
var ContactDescriptor = odata.Descriptor{
	Kind:       odata.KindContact,
	IDField:    "contactid",
	Attributes: []string{"firstname", "lastname", "emailaddress1", "telephone1", "company"},
}

// ContactRepository is repository of contacts
type ContactRepository interface {
	EntityRepository[model.Contact, model.NewContact, model.ContactPatch]
}

// NewContactRepository builds ContactRepository
func NewContactRepository(client HTTPDoer, cfg Config) ContactRepository {
	return newEntityRepository[model.Contact, model.NewContact, model.ContactPatch](client, cfg, ContactDescriptor)
}
