package models

// DisputeRecord is one dispute-crowdsourcer contribution by an account. Won
// is set when the crowdsourcer's outcome ends up winning the dispute round.
type DisputeRecord struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement"`
	MarketID string `gorm:"type:varchar(66);not null;index"`
	Account  string `gorm:"type:varchar(66);not null;index"`

	Won bool `gorm:"not null;default:false"`

	Timestamp   int64  `gorm:"not null;index"`
	BlockNumber uint64 `gorm:"not null"`
	LogIndex    uint64 `gorm:"not null"`
}

func (DisputeRecord) TableName() string {
	return "dispute_records"
}
