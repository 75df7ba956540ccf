package models

// SettingsModel stores the portal settings document as a single JSON row.
// There is one row per portal; Key exists so the table could hold other
// documents later.
type SettingsModel struct {
	BaseModel
	Key      string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Document string `gorm:"type:text;not null"`
}

// TableName returns the table name for GORM
func (SettingsModel) TableName() string {
	return "settings_documents"
}

// SettingsDocumentKey is the key of the portal settings row
const SettingsDocumentKey = "portal"
