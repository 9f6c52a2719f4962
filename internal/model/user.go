package model

// User is the identity of an orderer, initiator or ticket owner as far as
// the shop needs it. Accounts themselves are managed elsewhere.
type User struct {
	ID         int64   `json:"id"`
	ScreenName *string `json:"screen_name,omitempty"`
}

// DisplayName returns the screen name or a neutral placeholder for users without one.
func (u User) DisplayName() string {
	if u.ScreenName == nil || *u.ScreenName == "" {
		return "Someone"
	}
	return *u.ScreenName
}
