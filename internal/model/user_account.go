// internal/model/user_account.go
package model

import "time"

const (
	UserStatusActive   = "active"
	UserStatusDisabled = "disabled"

	RoleMember    = "member"
	RoleDeveloper = "developer"
)

type UserAccount struct {
	UID      int64     `db:"uid" json:"uid"`
	CID      int64     `db:"cid" json:"cid"`
	Username string    `db:"username" json:"username"`
	Email    string    `db:"email" json:"email"`
	Password string    `db:"password" json:"-"` // bcrypt hash
	Role     string    `db:"role" json:"role"`
	Status   string    `db:"status" json:"status"`
	CreateAt time.Time `db:"create_at" json:"create_at"`
	UpdateAt time.Time `db:"update_at" json:"update_at"`
}
