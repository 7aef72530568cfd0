package model

const RoleAdmin = "ADMIN"

type User struct {
	ID           string `json:"id" db:"id"`
	Email        string `json:"email" db:"email"`
	PasswordHash string `json:"-" db:"password_hash"`
	Role         string `json:"role" db:"role"`
	Ctime        int64  `json:"ctime" db:"ctime"`
}
