// internal/model/storage.go
package model

import "time"

// StorageEntry はクライアントの永続ストレージ (キー/値) の1行
type StorageEntry struct {
	Key       string    `gorm:"primaryKey;size:64" json:"key"`
	Value     string    `gorm:"not null" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (StorageEntry) TableName() string {
	return "storage_entries"
}
