package model

// Contact is contact entity
type Contact struct {
	ID        string `json:"contactid"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	FullName  string `json:"fullname"`
	Email     string `json:"emailaddress1"`
	Phone     string `json:"telephone1"`
	Company   string `json:"company"`
}

// NewContact holds attributes of contact to be created
type NewContact struct {
	FirstName string `json:"firstname" validate:"required"`
	LastName  string `json:"lastname" validate:"required"`
	Email     string `json:"emailaddress1,omitempty" validate:"omitempty,email"`
	Phone     string `json:"telephone1,omitempty"`
	Company   string `json:"company,omitempty"`
}

// ContactPatch holds contact attributes to be updated, nil fields are not sent
type ContactPatch struct {
	FirstName *string `json:"firstname,omitempty" validate:"omitempty,min=1"`
	LastName  *string `json:"lastname,omitempty" validate:"omitempty,min=1"`
	Email     *string `json:"emailaddress1,omitempty" validate:"omitempty,email"`
	Phone     *string `json:"telephone1,omitempty"`
	Company   *string `json:"company,omitempty"`
}
