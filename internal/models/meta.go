package models

// VersionKey is the meta_info key holding the schema version
const VersionKey = "Version"

// MetaInfo is a key-value fact about the store itself
type MetaInfo struct {
	Key   string `gorm:"column:key;primaryKey"`
	Value string `gorm:"column:value"`
}

// TableName overrides the gorm default
func (MetaInfo) TableName() string {
	return "meta_info"
}
