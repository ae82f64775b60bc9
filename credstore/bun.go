package credstore

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// DefaultSlotName is the slot used when no override is given.
const DefaultSlotName = "session"

// SlotModel is the Bun model for the credential slot table.
type SlotModel struct {
	bun.BaseModel `bun:"table:credential_slots,alias:cs"`

	Name       string    `bun:"name,pk"`
	Credential string    `bun:"credential,notnull"`
	UpdatedAt  time.Time `bun:"updated_at,nullzero,default:current_timestamp"`
}

// BunOption customizes the Bun store.
type BunOption func(*Bun)

// WithSlotName overrides the slot name.
func WithSlotName(name string) BunOption {
	return func(b *Bun) {
		if name != "" {
			b.slot = name
		}
	}
}

// Bun is a credential slot persisted in a single-row sqlite table.
type Bun struct {
	db   *bun.DB
	slot string
}

// NewBun creates a credential store on top of db.
func NewBun(db *bun.DB, opts ...BunOption) *Bun {
	b := &Bun{
		db:   db,
		slot: DefaultSlotName,
	}

	for _, opt := range opts {
		if opt != nil {
			opt(b)
		}
	}

	return b
}

// Open opens (or creates) a sqlite database at path and returns a Bun handle
// for it. Use ":memory:" for an ephemeral store.
func Open(path string) (*bun.DB, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, path)
	if err != nil {
		return nil, err
	}
	sqldb.SetMaxOpenConns(1)

	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}

// EnsureSchema creates the credential slot table if it does not exist.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().
		Model((*SlotModel)(nil)).
		IfNotExists().
		Exec(ctx)
	return err
}

// Read implements session.CredentialStorage. An absent slot reads as "".
func (b *Bun) Read(ctx context.Context) (string, error) {
	var model SlotModel
	err := b.db.NewSelect().
		Model(&model).
		Where("name = ?", b.slot).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	return model.Credential, nil
}

// Write implements session.CredentialStorage. Each write overwrites the slot.
func (b *Bun) Write(ctx context.Context, credential string) error {
	model := &SlotModel{
		Name:       b.slot,
		Credential: credential,
		UpdatedAt:  time.Now(),
	}

	_, err := b.db.NewInsert().
		Model(model).
		On("CONFLICT (name) DO UPDATE").
		Set("credential = EXCLUDED.credential").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)

	return err
}

// Clear implements session.CredentialStorage.
func (b *Bun) Clear(ctx context.Context) error {
	_, err := b.db.NewDelete().
		Model((*SlotModel)(nil)).
		Where("name = ?", b.slot).
		Exec(ctx)
	return err
}
