package repository

import (
	"context"

	"github.com/umalmyha/dataverse/internal/model"
	"github.com/umalmyha/dataverse/internal/odata"
)

// AccountPrimaryContactNav is navigation property of account primary contact
const AccountPrimaryContactNav = "primarycontactid"

// AccountDescriptor describes account entity kind
var AccountDescriptor = odata.Descriptor{
	Kind:       odata.KindAccount,
	IDField:    "accountid",
	Attributes: []string{"name", "emailaddress1", "telephone1", "address1_city"},
	Bindings: map[string]odata.Kind{
		AccountPrimaryContactNav: odata.KindContact,
	},
}

// AccountRepository is repository of accounts
type AccountRepository interface {
	EntityRepository[model.Account, model.NewAccount, model.AccountPatch]
	LinkPrimaryContact(context.Context, string, string, string) error
}

type primaryContactLink struct {
	Contact odata.Bind `json:"primarycontactid@odata.bind"`
}

type accountRepository struct {
	*entityRepository[model.Account, model.NewAccount, model.AccountPatch]
}

// NewAccountRepository builds AccountRepository
func NewAccountRepository(client HTTPDoer, cfg Config) AccountRepository {
	return &accountRepository{
		entityRepository: newEntityRepository[model.Account, model.NewAccount, model.AccountPatch](client, cfg, AccountDescriptor),
	}
}

// LinkPrimaryContact sets contact as primary contact of account
func (r *accountRepository) LinkPrimaryContact(ctx context.Context, accountID string, contactID string, token string) error {
	link := primaryContactLink{Contact: odata.BindTo(odata.KindContact, contactID)}
	return r.patch(ctx, opLink, accountID, link, token)
}
