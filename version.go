package notely

import (
	_ "embed"
)

// Version is the release of the client, read from the VERSION file.
//
//go:embed VERSION
var Version string
