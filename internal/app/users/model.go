/*
Package users contains the shopper account model and the repository seam
behind the session store.

The repository interface exists so the in-memory demo backend can later be
replaced by the real commerce customer API without touching store logic.
*/
package users

// Address is a shopper's postal address.
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// Preferences holds a shopper's communication and display preferences.
type Preferences struct {
	Newsletter   bool `json:"newsletter"`
	Marketing    bool `json:"marketing"`
	OrderUpdates bool `json:"orderUpdates"`
	Promotions   bool `json:"promotions"`
	DarkMode     bool `json:"darkMode"`
}

// User is a shopper account. The credential hash lives only in the repository
// backing record; User values handed to callers never carry it.
type User struct {
	ID          string      `json:"id"`
	Email       string      `json:"email"`
	FirstName   string      `json:"firstName"`
	LastName    string      `json:"lastName"`
	Phone       string      `json:"phone"`
	Avatar      string      `json:"avatar,omitempty"`
	Address     Address     `json:"address"`
	Preferences Preferences `json:"preferences"`
}

// Patch is a shallow profile update. Nil fields are left untouched;
// non-nil fields replace the current value.
type Patch struct {
	FirstName   *string      `json:"firstName,omitempty"`
	LastName    *string      `json:"lastName,omitempty"`
	Phone       *string      `json:"phone,omitempty"`
	Avatar      *string      `json:"avatar,omitempty"`
	Address     *Address     `json:"address,omitempty"`
	Preferences *Preferences `json:"preferences,omitempty"`
}

// Apply merges the patch into u, field by field.
func (p Patch) Apply(u *User) {
	if p.FirstName != nil {
		u.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		u.LastName = *p.LastName
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Avatar != nil {
		u.Avatar = *p.Avatar
	}
	if p.Address != nil {
		u.Address = *p.Address
	}
	if p.Preferences != nil {
		u.Preferences = *p.Preferences
	}
}

// DefaultPreferences are assigned to newly registered shoppers.
func DefaultPreferences() Preferences {
	return Preferences{
		Newsletter:   true,
		Marketing:    false,
		OrderUpdates: true,
		Promotions:   false,
		DarkMode:     false,
	}
}
