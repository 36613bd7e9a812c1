package models

import "time"

const (
	RoleIndividual   = "individual"
	RoleLegalEntity  = "legal_entity"
	RoleEntrepreneur = "entrepreneur"
)

type User struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	Surname         string     `json:"surname"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	PasswordHash    string     `json:"-"`
	Role            string     `json:"role"`
	Voen            string     `json:"voen,omitempty"`
	Avatar          string     `json:"avatar"`
	IsAdmin         bool       `json:"is_admin"`
	EmailVerifiedAt *time.Time `json:"email_verified_at"`
	CreatedAt       time.Time  `json:"created_at"`
	Adverts         []Advert   `json:"adverts,omitempty"`
}

func (u User) EmailVerified() bool {
	return u.EmailVerifiedAt != nil
}

func ValidRole(role string) bool {
	switch role {
	case RoleIndividual, RoleLegalEntity, RoleEntrepreneur:
		return true
	}
	return false
}
