package model

import (
	"time"

	"github.com/google/uuid"
)

// SavedBudget is the portable, self-contained snapshot of a full catalog
// state ("presupuesto"). The product list is serialized under the legacy
// "doors" key for compatibility with existing snapshot files.
//
// ClientInfo is a pointer so that older snapshots missing the block can be
// told apart from an explicitly empty one — import coalesces nil to the
// documented defaults.
type SavedBudget struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Timestamp    int64       `json:"timestamp"` // epoch milliseconds at save time
	Doors        []Product   `json:"doors"`
	ClientInfo   *ClientInfo `json:"clientInfo"`
	GeneralNotes string      `json:"generalNotes"`
}

// BudgetRecord is the archived copy of a saved budget kept in Postgres.
// Payload holds the exact snapshot JSON that was (or would be) written to
// disk, so re-importing an archived budget round-trips byte-identical state.
type BudgetRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Nombre    string    `gorm:"not null;index"`
	Timestamp int64     `gorm:"not null"`
	Payload   []byte    `gorm:"type:jsonb;not null"`
	CreatedAt time.Time
}

func (BudgetRecord) TableName() string { return "presupuestos" }
