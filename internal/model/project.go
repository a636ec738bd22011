// internal/model/project.go
package model

import (
	"time"

	"github.com/unclebandit/adreport-backend/internal/projectconfig"
)

// Project is owned by a company. Config and Auto are stored as JSON text and
// always materialize to a fully defaulted value, even from a NULL column.
type Project struct {
	PID         int64                `db:"pid" json:"pid"`
	CID         int64                `db:"cid" json:"-"`
	Name        string               `db:"name" json:"name"`
	AccessToken string               `db:"access_token" json:"-"`
	AdAccountID string               `db:"ad_account_id" json:"ad_account_id"`
	Config      projectconfig.Config `db:"config" json:"config"`
	Auto        projectconfig.Auto   `db:"auto" json:"auto"`
	CreateAt    time.Time            `db:"create_at" json:"create_at"`
	UpdateAt    time.Time            `db:"update_at" json:"update_at"`
}
