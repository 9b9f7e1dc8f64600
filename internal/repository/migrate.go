package repository

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
)

// Tables holding history. Both share one layout; payload is the JSON document.
const (
	TableVerifications = "verifications"
	TableContracts     = "contract_analyses"
)

func ddl(d, table string) []string {
	seq := "seq INTEGER PRIMARY KEY AUTOINCREMENT"
	if d == dialect.Postgres {
		seq = "seq BIGSERIAL PRIMARY KEY"
	}
	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
	%s,
	id TEXT NOT NULL UNIQUE,
	name TEXT NOT NULL,
	status TEXT NOT NULL,
	created_at TEXT NOT NULL,
	payload TEXT NOT NULL
)`, table, seq),
		fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%s_status ON %s (status)", table, table),
	}
}

// Migrate creates the history tables if they are missing.
func (s *Store) Migrate(ctx context.Context) error {
	for _, table := range []string{TableVerifications, TableContracts} {
		for _, stmt := range ddl(s.dialect, table) {
			if err := s.drv.Exec(ctx, stmt, []any{}, nil); err != nil {
				s.logger.Error("migration failed", "table", table, "error", err)
				return dbError(err)
			}
		}
	}
	s.logger.Info("db.migrate.ok", "dialect", s.dialect)
	return nil
}
