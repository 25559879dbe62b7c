package models

// Sequence is a durable per-company, per-type counter backing story
// identifier generation. Value holds the last sequence number handed out.
type Sequence struct {
	ID        uint      `gorm:"primaryKey"`
	CompanyID uint      `gorm:"column:company_id;uniqueIndex:idx_sequences_company_type"`
	StoryType StoryType `gorm:"column:story_type;uniqueIndex:idx_sequences_company_type"`
	Value     int       `gorm:"not null"`
}

// TableName specifies the table name for Sequence Model
func (Sequence) TableName() string {
	return "sequences"
}
