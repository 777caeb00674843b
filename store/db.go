package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type sheetRecord struct {
	ID        string `gorm:"primarykey"`
	Name      string `gorm:"index:idx_name_version,unique"`
	Version   int    `gorm:"index:idx_name_version,unique"`
	Lines     int64
	Columns   int64
	Checksum  []byte
	CreatedAt time.Time
	Cells     []cellRecord `gorm:"foreignKey:SheetID"`
}

func (sheetRecord) TableName() string {
	return "sheets"
}

type cellRecord struct {
	ID      int64  `gorm:"primarykey"`
	SheetID string `gorm:"index:idx_sheet"`
	Line    int64
	Col     int64
	Raw     string
}

func (cellRecord) TableName() string {
	return "cells"
}

// Info describes a stored snapshot without its cells.
type Info struct {
	Name    string
	Version int
	Lines   int64
	Columns int64
	Created time.Time
}

// DB keeps every version of named snapshots in a SQLite database.
type DB struct {
	db *gorm.DB
}

func Open(path string) (*DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&sheetRecord{}, &cellRecord{}); err != nil {
		return nil, err
	}
	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	db, err := d.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

// Save stores snap as the next version of its name. snap is given a new
// identifier and its version number.
func (d *DB) Save(snap *Snapshot) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&sheetRecord{}).Where("name = ?", snap.Name).Count(&count).Error
		if err != nil {
			return err
		}
		rec := sheetRecord{
			ID:        uuid.NewString(),
			Name:      snap.Name,
			Version:   int(count) + 1,
			Lines:     snap.Lines,
			Columns:   snap.Columns,
			Checksum:  snap.Checksum,
			CreatedAt: snap.Created,
		}
		for _, c := range snap.Cells {
			cr := cellRecord{
				Line: c.Line,
				Col:  c.Column,
				Raw:  c.Raw,
			}
			rec.Cells = append(rec.Cells, cr)
		}
		if err := tx.Create(&rec).Error; err != nil {
			return err
		}
		snap.ID = rec.ID
		snap.Version = rec.Version
		return nil
	})
}

// Latest gives the last version saved under name.
func (d *DB) Latest(name string) (*Snapshot, error) {
	return d.find(name, 0)
}

// Version gives a specific version saved under name.
func (d *DB) Version(name string, version int) (*Snapshot, error) {
	if version <= 0 {
		return nil, fmt.Errorf("%s@%d: %w", name, version, ErrNotFound)
	}
	return d.find(name, version)
}

func (d *DB) List() ([]Info, error) {
	var recs []sheetRecord
	err := d.db.Model(&sheetRecord{}).Order("name").Order("version").Find(&recs).Error
	if err != nil {
		return nil, err
	}
	var list []Info
	for _, r := range recs {
		i := Info{
			Name:    r.Name,
			Version: r.Version,
			Lines:   r.Lines,
			Columns: r.Columns,
			Created: r.CreatedAt,
		}
		list = append(list, i)
	}
	return list, nil
}

func (d *DB) find(name string, version int) (*Snapshot, error) {
	var (
		rec sheetRecord
		qry = d.db.Preload("Cells", func(db *gorm.DB) *gorm.DB {
			return db.Order("line").Order("col")
		})
	)
	qry = qry.Where("name = ?", name)
	if version > 0 {
		qry = qry.Where("version = ?", version)
	}
	err := qry.Order("version desc").First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	snap := Snapshot{
		ID:       rec.ID,
		Name:     rec.Name,
		Version:  rec.Version,
		Lines:    rec.Lines,
		Columns:  rec.Columns,
		Created:  rec.CreatedAt,
		Checksum: rec.Checksum,
	}
	for _, c := range rec.Cells {
		r := Record{
			Line:   c.Line,
			Column: c.Col,
			Raw:    c.Raw,
		}
		snap.Cells = append(snap.Cells, r)
	}
	if err := snap.Verify(); err != nil {
		return nil, err
	}
	return &snap, nil
}
