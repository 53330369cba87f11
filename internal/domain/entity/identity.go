package entity

import "time"

// Identity is the credential-bearing account owned by the identity provider.
// Its ID is stable and keys every role record that belongs to it.
type Identity struct {
	ID        string // Provider-assigned account id.
	Email     string // Login email, unique across identities.
	SessionID string // Set by Authenticate; names the session the login opened.
}

// Principal is the authenticated actor passed explicitly into privileged operations.
type Principal struct {
	AccountID  string `json:"accountId"`
	Email      string `json:"email"`
	Role       Role   `json:"role"`
	PharmacyID string `json:"pharmacyId,omitempty"` // Set only for pharmacists.
	SessionID  string `json:"-"`
}

// Is reports whether the principal holds the given role.
func (p Principal) Is(role Role) bool {
	return p.AccountID != "" && p.Role == role
}

// Account is the per-identity index record. Exactly one exists for every
// identity that completed provisioning, and its Role names the role record.
type Account struct {
	AccountID string    `firestore:"accountId" json:"accountId"`
	Email     string    `firestore:"email" json:"email"`
	Role      Role      `firestore:"role" json:"role"`
	CreatedAt time.Time `firestore:"createdAt" json:"createdAt"`
}

// Fields returns the record store representation of the account.
func (a *Account) Fields() map[string]any {
	return map[string]any{
		"accountId": a.AccountID,
		"email":     a.Email,
		"role":      a.Role.String(),
		"createdAt": a.CreatedAt,
	}
}

// AccountFromFields decodes an account index record.
func AccountFromFields(fields map[string]any) (*Account, error) {
	account := &Account{}
	if err := decodeFields(fields, account); err != nil {
		return nil, err
	}

	return account, nil
}
