package entity

import "time"

// Administrator is the role record of a network administrator, keyed by identity id.
type Administrator struct {
	UserID    string    `firestore:"userId" json:"userId"`
	Name      string    `firestore:"name" json:"name"`
	Email     string    `firestore:"email" json:"email"`
	Role      Role      `firestore:"role" json:"role"`
	Phone     string    `firestore:"phone,omitempty" json:"phone,omitempty"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}

// Fields returns the record store representation of the administrator.
func (a *Administrator) Fields() map[string]any {
	fields := map[string]any{
		"userId":    a.UserID,
		"name":      a.Name,
		"email":     a.Email,
		"role":      RoleAdmin.String(),
		"createdAt": a.CreatedAt,
	}
	putIfSet(fields, "phone", a.Phone)

	return fields
}

// AdministratorFromFields decodes an administrator record.
func AdministratorFromFields(fields map[string]any) (*Administrator, error) {
	admin := &Administrator{}
	if err := decodeFields(fields, admin); err != nil {
		return nil, err
	}

	return admin, nil
}
