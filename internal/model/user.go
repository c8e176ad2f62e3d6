package model

import "time"

type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PhoneNo      string    `json:"phone_no"`
	Role         string    `json:"role"` // Admin / ProjectManager / Technician
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Recipient is the notification-facing slice of a user.
type Recipient struct {
	UserID  int    `json:"user_id"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	PhoneNo string `json:"phone_no,omitempty"`
}

func (u *User) Recipient() Recipient {
	return Recipient{
		UserID:  u.ID,
		Name:    u.Name,
		Email:   u.Email,
		PhoneNo: u.PhoneNo,
	}
}
