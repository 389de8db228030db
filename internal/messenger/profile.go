package messenger

// ProfileFields is the field list requested from the user profile endpoint.
const ProfileFields = "first_name,last_name,profile_pic"

// UserProfile is the sender's public profile, fetched per event and never stored.
type UserProfile struct {
	ID         string `json:"id,omitempty"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	ProfilePic string `json:"profile_pic"`
}
