// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role an account holds in the pharmacy network.
type Role string

const (
	// RoleAdmin indicates a network administrator.
	RoleAdmin Role = "admin"
	// RolePharmacist indicates a pharmacist attached to exactly one pharmacy.
	RolePharmacist Role = "pharmacist"
	// RoleUser indicates a customer.
	RoleUser Role = "user"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RolePharmacist, RoleUser:
		return true
	default:
		return false
	}
}

// IsOperator reports whether the role signs in to the operator console.
func (r Role) IsOperator() bool {
	return r == RoleAdmin || r == RolePharmacist
}

// Collection returns the record collection that holds role records for r.
func (r Role) Collection() string {
	switch r {
	case RoleAdmin:
		return CollectionAdministrators
	case RolePharmacist:
		return CollectionPharmacists
	case RoleUser:
		return CollectionCustomers
	default:
		return ""
	}
}
