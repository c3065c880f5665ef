// Package pawpal carries release metadata shared by the binary and its
// subcommands.
package pawpal

import _ "embed"

// Version is the running application version.
const Version = "0.3.0"

// Changelog is the release history shown on the what's new screen.
//
//go:embed CHANGELOG.md
var Changelog string
