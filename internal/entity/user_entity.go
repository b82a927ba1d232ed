// FILE: internal/entity/user_entity.go
package entity

import (
	"github.com/google/uuid"
)

// User is a dashboard account. Its Role selects a column of every feature access matrix.
type User struct {
	Id           uuid.UUID
	Email        string
	PasswordHash string
	FullName     string
	Role         Role
	Department   string
}
