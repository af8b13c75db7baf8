package ports

import (
	"context"

	"gowoe/domain/table"
)

// TableSourcePort loads an observation table from some backing store
// (file, database, generator). The engine itself is storage-agnostic.
type TableSourcePort interface {
	Load(ctx context.Context) (*table.Table, error)
}
