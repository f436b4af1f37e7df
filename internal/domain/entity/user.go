package entity

import "time"

// User representa una cuenta del sistema. Username es único global;
// PasswordHash es bcrypt, nunca texto plano después de persistir.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
