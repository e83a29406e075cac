package export

import (
	"fmt"
	"os"
	"path/filepath"

	"pension-report/internal/model"
)

// FileSaver writes artifacts into a directory.
type FileSaver struct {
	Dir string
}

func (s FileSaver) Save(artifact *model.ReportArtifact) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(s.Dir, filepath.Base(artifact.Filename))
	if err := os.WriteFile(path, artifact.Data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
