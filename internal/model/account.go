package model

// Account is account entity
type Account struct {
	ID               string   `json:"accountid"`
	Name             string   `json:"name"`
	Email            string   `json:"emailaddress1"`
	Phone            string   `json:"telephone1"`
	City             string   `json:"address1_city"`
	PrimaryContactID *string  `json:"_primarycontactid_value"`
	PrimaryContact   *Contact `json:"primarycontactid,omitempty"`
}

// NewAccount holds attributes of account to be created
type NewAccount struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"emailaddress1,omitempty" validate:"omitempty,email"`
	Phone string `json:"telephone1,omitempty"`
	City  string `json:"address1_city,omitempty"`
}

// AccountPatch holds account attributes to be updated, nil fields are not sent
type AccountPatch struct {
	Name  *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Email *string `json:"emailaddress1,omitempty" validate:"omitempty,email"`
	Phone *string `json:"telephone1,omitempty"`
	City  *string `json:"address1_city,omitempty"`
}
