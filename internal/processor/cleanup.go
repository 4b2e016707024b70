package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// moveToArchived moves a processed capture out of the inbox.
func (p *implProcessor) moveToArchived(ctx context.Context, capturePath string) error {
	if err := os.MkdirAll(p.cfg.Paths.Archived, 0755); err != nil {
		return fmt.Errorf("create archived dir: %w", err)
	}

	destPath := filepath.Join(p.cfg.Paths.Archived, filepath.Base(capturePath))
	p.logger.Debug(ctx, "Archiving capture: %s -> %s", capturePath, destPath)

	if err := os.Rename(capturePath, destPath); err != nil {
		return fmt.Errorf("move to archived: %w", err)
	}
	return nil
}
