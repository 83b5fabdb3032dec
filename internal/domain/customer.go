package domain

import "strings"

// Customer is keyed by the identity document (NIC or passport number).
type Customer struct {
	IDDocument    string `json:"id_document" db:"id_document"`
	Name          string `json:"name" db:"name"`
	ContactNumber string `json:"contact_number" db:"contact_number"`
	Email         string `json:"email" db:"email"`
}

// FoldName is the form customer names are compared in when searching.
func FoldName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
