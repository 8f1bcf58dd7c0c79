package dbmysql

import "time"

// Alert is the persisted, recipient-facing notification record. Role-slot
// display fields are denormalized copies: the referenced entities may be
// renamed or deleted later and the alert must stay displayable.
type Alert struct {
	ID           string `gorm:"primaryKey;size:36"`
	RecipientID  int64  `gorm:"not null;index:idx_alerts_recipient"`
	Type         string `gorm:"not null;size:50;index:idx_alerts_aggregation"`
	HighPriority bool   `gorm:"not null;default:false"`
	IsRead       bool   `gorm:"not null;default:false;index:idx_alerts_recipient;index:idx_alerts_aggregation"`

	// How many events this alert absorbed ("N people commented").
	OccurrenceCount int `gorm:"not null;default:1"`

	Message string `gorm:"not null;size:512"`
	URL     string `gorm:"size:512"`

	ActorName     string `gorm:"size:255"`
	ActorUniqueID string `gorm:"size:255"`

	SubjectID   *int64 `gorm:"index:idx_alerts_aggregation"`
	SubjectType string `gorm:"size:50"`

	DestinationName     string `gorm:"size:255"`
	DestinationUniqueID string `gorm:"size:255"`
	DestinationType     string `gorm:"size:50"`

	AuxiliaryName     string `gorm:"size:255"`
	AuxiliaryUniqueID string `gorm:"size:255"`
	AuxiliaryType     string `gorm:"size:50"`

	// Timestamp of the latest contributing event.
	NotifiedAt time.Time `gorm:"not null;index"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
