package entity

import "encoding/json"

// Profile is the merged view of an identity and its single role record.
// Exactly one of Administrator, Pharmacist or Customer is set, matching Role.
// On the wire it is one flat object: the role record's fields plus accountId,
// email and role.
type Profile struct {
	AccountID     string
	Email         string
	Role          Role
	Administrator *Administrator
	Pharmacist    *Pharmacist
	Customer      *Customer
	SessionID     string
}

// NewProfile decodes fields according to role and merges them with the identity.
func NewProfile(identity Identity, role Role, fields map[string]any) (*Profile, error) {
	profile := &Profile{AccountID: identity.ID, Email: identity.Email, Role: role, SessionID: identity.SessionID}

	var err error
	switch role {
	case RoleAdmin:
		profile.Administrator, err = AdministratorFromFields(fields)
	case RolePharmacist:
		profile.Pharmacist, err = PharmacistFromFields(fields)
	case RoleUser:
		profile.Customer, err = CustomerFromFields(fields)
	}
	if err != nil {
		return nil, err
	}

	return profile, nil
}

// Name returns the display name held by the role record.
func (p *Profile) Name() string {
	switch {
	case p.Administrator != nil:
		return p.Administrator.Name
	case p.Pharmacist != nil:
		return p.Pharmacist.Name
	case p.Customer != nil:
		return p.Customer.FullName
	default:
		return ""
	}
}

// Principal returns the authorization context for this profile.
func (p *Profile) Principal() Principal {
	principal := Principal{AccountID: p.AccountID, Email: p.Email, Role: p.Role, SessionID: p.SessionID}
	if p.Pharmacist != nil {
		principal.PharmacyID = p.Pharmacist.PharmacyID
	}

	return principal
}

func (p *Profile) record() any {
	switch {
	case p.Administrator != nil:
		return p.Administrator
	case p.Pharmacist != nil:
		return p.Pharmacist
	case p.Customer != nil:
		return p.Customer
	default:
		return nil
	}
}

// MarshalJSON flattens the role record into the profile object. The identity's
// email overrides the one stored on the record.
func (p Profile) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any)
	if record := p.record(); record != nil {
		raw, err := json.Marshal(record)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, &flat); err != nil {
			return nil, err
		}
	}

	flat["accountId"] = p.AccountID
	flat["email"] = p.Email
	flat["role"] = p.Role

	return json.Marshal(flat)
}

// UnmarshalJSON reads a flat profile, decoding the role record named by "role".
func (p *Profile) UnmarshalJSON(data []byte) error {
	var head struct {
		AccountID string `json:"accountId"`
		Email     string `json:"email"`
		Role      Role   `json:"role"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}

	*p = Profile{AccountID: head.AccountID, Email: head.Email, Role: head.Role}

	var record any
	switch head.Role {
	case RoleAdmin:
		p.Administrator = &Administrator{}
		record = p.Administrator
	case RolePharmacist:
		p.Pharmacist = &Pharmacist{}
		record = p.Pharmacist
	case RoleUser:
		p.Customer = &Customer{}
		record = p.Customer
	default:
		return nil
	}

	return json.Unmarshal(data, record)
}
