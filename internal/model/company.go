// internal/model/company.go
package model

import "time"

const (
	CompanyStatusActive   = "active"
	CompanyStatusInactive = "inactive"
)

type Company struct {
	CID      int64     `db:"cid" json:"cid"`
	Name     string    `db:"name" json:"name"`
	Status   string    `db:"status" json:"status"`
	CreateAt time.Time `db:"create_at" json:"create_at"`
	UpdateAt time.Time `db:"update_at" json:"update_at"`
}
