package file

import (
	"time"
)

// File records one stored label upload and the URL it is served under.
type File struct {
	ID       uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Filename string `gorm:"type:varchar(255);not null" json:"filename"`
	URL      string `gorm:"type:varchar(512);not null" json:"url"`

	UploadedAt time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

// TableName sets the table name for the File model
func (File) TableName() string {
	return "files"
}
