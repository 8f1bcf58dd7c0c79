package dbmysql

import "time"

// FilterPreference is one suppression row: the person does not want
// notifications of this category on this channel. Absence of a row means
// deliver -- the model is opt-out.
type FilterPreference struct {
	PersonID  int64     `gorm:"primaryKey;autoIncrement:false"`
	Channel   string    `gorm:"primaryKey;size:20"`
	Category  string    `gorm:"primaryKey;size:50"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
