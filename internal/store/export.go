package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
)

// export writes the collection as pretty-printed JSON under the export dir.
// Failures are logged and swallowed: the save already succeeded and the
// snapshot is a convenience copy, not a source of truth.
func (s *Store) export(ctx context.Context, name Collection, records any) {
	if s.exportDir == "" {
		return
	}

	payload, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		s.warnExport(ctx, name, err)
		return
	}
	if err := os.MkdirAll(s.exportDir, 0o755); err != nil {
		s.warnExport(ctx, name, err)
		return
	}

	path := filepath.Join(s.exportDir, name.String()+".json")
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		s.warnExport(ctx, name, err)
	}
}

func (s *Store) warnExport(ctx context.Context, name Collection, err error) {
	if s.logg == nil {
		return
	}
	ctx = s.logg.WithCollection(ctx, name.String())
	ctx = s.logg.WithField(ctx, "error", err.Error())
	s.logg.Warn(ctx, "collection export skipped")
}
