package response

import (
	"time"

	"github.com/gofrs/uuid"
)

type User struct {
	ID        uuid.UUID  `json:"id" db:"id"`
	Username  string     `json:"username" db:"username"`
	Password  *string    `json:"-" db:"password"`
	CreatedAt *time.Time `json:"created_at,omitempty" db:"created_at"`
}
