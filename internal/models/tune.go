package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TuneRecord is the structured metadata gorm keeps per tune. The raw
// ABC text itself lives in the tune cache, keyed by the same ID. The
// table is read by GET /api/v1/tunes/:id and counted by the health
// check; search runs over the in-memory search.Index, not over this
// table, and nothing in this repository inserts its rows.
type TuneRecord struct {
	ID          uint32         `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	Title       string         `gorm:"index" json:"title"`
	Composer    string         `json:"composer"`
	KeyNote     string         `json:"key_note"`
	KeyMode     string         `json:"key_mode"`
	MeterUpper  int            `json:"meter_upper"`
	MeterLower  int            `json:"meter_lower"`
	NoteCount   int            `json:"note_count"`
	Description string         `gorm:"type:text" json:"description,omitempty"`
	IngestedAt  time.Time      `json:"ingested_at"`
}

// AdminUser is the single role this service authenticates: an
// operator allowed to trigger a reindex. There is no public
// registration or self-service account model.
type AdminUser struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string         `gorm:"not null" json:"-"`
}

// SetPassword hashes and stores password using bcrypt.
func (a *AdminUser) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	a.PasswordHash = string(hashed)
	return nil
}

// CheckPassword compares a password against the stored hash.
func (a *AdminUser) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) == nil
}
