package interchange

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version is the release of the module, read from the VERSION file.
var Version = strings.TrimSpace(version)
