package repo

import (
	"errors"

	"github.com/scienceol/osfarm/pkg/common/code"
	"github.com/scienceol/osfarm/pkg/middleware/db"
)

// TranslateErr maps driver errors onto the code taxonomy. Foreign key
// failures are referential errors, missing rows are RecordNotFound and
// everything else is wrapped unchanged in fallback.
func TranslateErr(err error, fallback *code.ErrCode) error {
	if err == nil {
		return nil
	}
	var c *code.ErrCode
	if errors.As(err, &c) {
		return err
	}
	switch {
	case db.IsNotFound(err):
		return code.RecordNotFound
	case db.IsForeignKeyViolation(err):
		return code.ReferentialErr.WithErr(err)
	default:
		return fallback.WithErr(err)
	}
}
