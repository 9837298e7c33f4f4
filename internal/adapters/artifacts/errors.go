package artifacts

import (
	"fmt"
	"io/fs"
)

// ErrArtifactNotFound reports a missing model or scaler file. It matches
// fs.ErrNotExist with errors.Is.
var ErrArtifactNotFound = fmt.Errorf("artifact not found: %w", fs.ErrNotExist)
