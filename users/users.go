package users

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`        // Stored lower-cased, unique
	PasswordHash string    `json:"-"`            // Never serialize the credential hash
	DisplayName  string    `json:"displayName"`
	ProfileColor *string   `json:"profileColor"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PublicUser is the sanitized projection returned by the API.
type PublicUser struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"displayName"`
	ProfileColor *string   `json:"profileColor"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:           u.ID,
		Email:        u.Email,
		DisplayName:  u.DisplayName,
		ProfileColor: u.ProfileColor,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}
