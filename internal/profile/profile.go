package profile

import "github.com/ariefcatur/go-salon-orders/internal/config"

// Profile is the read-only owner card. It comes from configuration and is
// never stored.
type Profile struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id,omitempty"`
	Email string `json:"email"`
	Age   int    `json:"age,omitempty"`
	City  string `json:"city,omitempty"`
}

func FromConfig(c config.ProfileConfig) Profile {
	return Profile{Name: c.Name, TaxID: c.TaxID, Email: c.Email, Age: c.Age, City: c.City}
}
