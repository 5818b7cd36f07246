package repo

import (
	"context"

	"gorm.io/gorm"
)

// Transactor runs fn in one storage transaction. Repositories called with
// txCtx join it.
type Transactor interface {
	ExecTx(ctx context.Context, fn func(txCtx context.Context) error) error
}

const defaultLimit = 20

type Page struct {
	Offset int
	Limit  int
}

// Paginate is a gorm scope applying the page, 20 rows when Limit is unset.
func (p Page) Paginate(db *gorm.DB) *gorm.DB {
	limit := p.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	return db.Offset(p.Offset).Limit(limit)
}
