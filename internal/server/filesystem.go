package server

import (
	"os"

	"ytgrab-server/internal/config"
)

// PrepareFilesystem creates the temp area every job writes into
func PrepareFilesystem(cfg *config.Config) error {
	return os.MkdirAll(cfg.TempDir, 0755)
}
