package domain

// OwnerID is the fixed identifier carried by the single valid identity.
const OwnerID = "owner"

// Identity is the minimal authenticated-user record carried by a session.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// OwnerIdentity returns the identity issued for the configured owner email.
func OwnerIdentity(email string) Identity {
	return Identity{
		ID:    OwnerID,
		Email: email,
		Name:  "Owner",
	}
}
