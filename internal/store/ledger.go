// Package store persists the cross-game okalu ledger so a table's standing
// survives a server restart. The ledger is optional: a nil *Ledger is a
// valid no-op handle, and the in-session state remains authoritative.
package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OkaluRecord is one table's ledger row, keyed by game code.
type OkaluRecord struct {
	Code       string `gorm:"primaryKey;size:12"`
	TeamOkalu0 int
	TeamOkalu1 int
	UpdatedAt  time.Time
}

type Ledger struct {
	db *gorm.DB
}

// Open connects to postgres and migrates the ledger table.
func Open(dsn string) (*Ledger, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&OkaluRecord{}); err != nil {
		return nil, err
	}
	return &Ledger{db: db}, nil
}

// Load returns the persisted okalu for a game code. ok is false when no row
// exists or when the ledger is unconfigured.
func (l *Ledger) Load(ctx context.Context, code string) (okalu [2]int, ok bool, err error) {
	if l == nil {
		return [2]int{}, false, nil
	}
	var rec OkaluRecord
	res := l.db.WithContext(ctx).First(&rec, "code = ?", code)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrRecordNotFound) {
			return [2]int{}, false, nil
		}
		return [2]int{}, false, res.Error
	}
	return [2]int{rec.TeamOkalu0, rec.TeamOkalu1}, true, nil
}

// Save upserts the okalu standing for a game code.
func (l *Ledger) Save(ctx context.Context, code string, okalu [2]int) error {
	if l == nil {
		return nil
	}
	rec := OkaluRecord{Code: code, TeamOkalu0: okalu[0], TeamOkalu1: okalu[1]}
	return l.db.WithContext(ctx).Save(&rec).Error
}
