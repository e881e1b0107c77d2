// Package model contains domain entities shared across layers.
// I keep it lean and focused on data shapes without behavior.
package model

// Customer is one row of the customers table.
// Optional columns are pointers so NULL survives the round trip to JSON.
type Customer struct {
	ID           string  `json:"customer_id"`
	CompanyName  string  `json:"company_name"`
	ContactName  *string `json:"contact_name"`
	ContactTitle *string `json:"contact_title"`
	Address      *string `json:"address"`
	City         *string `json:"city"`
	Region       *string `json:"region"`
	PostalCode   *string `json:"postal_code"`
	Country      *string `json:"country"`
	Phone        *string `json:"phone"`
	Fax          *string `json:"fax"`
}

// CustomerFilter narrows a customer listing.
// An empty Search matches every row.
type CustomerFilter struct {
	Search string
}
