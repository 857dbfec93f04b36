package auth_model

import (
	"time"

	"github.com/lib/pq"
)

type User struct {
	ID        string         `db:"id" json:"_id"`
	FullName  string         `db:"full_name" json:"fullName"`
	Email     string         `db:"email" json:"email"`
	Password  string         `db:"password" json:"-"`
	Boards    pq.StringArray `db:"boards" json:"boards"`
	CreatedAt time.Time      `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time      `db:"updated_at" json:"updatedAt"`
}
