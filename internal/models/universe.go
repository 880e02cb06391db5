package models

// Universe scopes markets and accounts. Queries referencing an unknown
// universe fail fast.
type Universe struct {
	ID                string `gorm:"primaryKey;type:varchar(66)"`
	ParentUniverseID  string `gorm:"type:varchar(66);index"`
	CreationTimestamp int64  `gorm:"not null"`
}

func (Universe) TableName() string {
	return "universes"
}
