package storage

import (
	"fmt"

	"github.com/yourname/studytracker/internal"
	"github.com/yourname/studytracker/internal/config"
)

// NewStore picks the backend from configuration.
func NewStore(cfg *config.Config, logger internal.Logger) (Store, error) {
	switch cfg.DBType {
	case "postgres":
		return NewPostgresStorage(cfg.DBDSN, logger)
	case "file":
		return NewFileStorage(cfg.FileLogs, cfg.FileMilestones, cfg.FileSettings, logger)
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.DBType)
	}
}
