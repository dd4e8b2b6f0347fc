package part

import (
	"time"
)

// Part is shared reference data mapping a part number to its last-known
// description. It is refreshed opportunistically from shipment writes with
// upsert semantics: last write wins, no versioning.
type Part struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	PartNo   string `gorm:"type:varchar(100);not null;uniqueIndex" json:"part_no"`
	PartDesc string `gorm:"type:varchar(255)" json:"part_desc"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Part model
func (Part) TableName() string {
	return "parts"
}
