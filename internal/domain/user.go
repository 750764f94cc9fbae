package domain

// User is a library member. Password is only sent on create/login/register
// and may be absent in list responses.
type User struct {
	ID        int     `json:"id"`
	Username  string  `json:"username"`
	Password  *string `json:"password,omitempty"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone,omitempty"`
	CreatedAt *string `json:"created_at,omitempty"`
}

// Credentials builds the body sent to the login endpoint.
func Credentials(username, password string) User {
	return User{Username: username, Password: &password}
}

// SeedUsers mirrors SeedBooks for members.
func SeedUsers() []User {
	return []User{
		{
			ID:       1,
			Username: "john_doe",
			Password: strPtr("password123"),
			Email:    "john@example.com",
			Phone:    strPtr("123-456-7890"),
		},
		{
			ID:       2,
			Username: "jane_smith",
			Password: strPtr("password456"),
			Email:    "jane@example.com",
			Phone:    strPtr("987-654-3210"),
		},
	}
}

func FindUser(users []User, id int) (User, bool) {
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}

// FindUserByName matches the username exactly (case-sensitive, like the server).
func FindUserByName(users []User, username string) (User, bool) {
	for _, u := range users {
		if u.Username == username {
			return u, true
		}
	}
	return User{}, false
}

// Clone returns a copy that shares no pointers with u.
func (u User) Clone() User {
	out := u
	out.Password = clonePtr(u.Password)
	out.Phone = clonePtr(u.Phone)
	out.CreatedAt = clonePtr(u.CreatedAt)
	return out
}

func clonePtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
