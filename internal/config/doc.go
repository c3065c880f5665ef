// Package config loads pawpal's TOML configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/pawpal/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty, use defaults
//  5. PAWPAL_CLIENT_ID, PAWPAL_CLIENT_SECRET and PAWPAL_API_URL override
//     the file when set
//
// # TOML Format
//
//	api_url = "https://api.petfinder.com"
//	client_id = ""
//	client_secret = ""
//	data_dir = "~/.local/share/pawpal"
//	storage = "bolt"          # bolt | sqlite
//	poll_seconds = 60
//	request_timeout_seconds = 10
//	log_level = "info"        # debug | info | warn | error
//
// Every field is optional. Tilde expansion is performed on data_dir.
//
// # Derived Paths
//
//   - DatabasePath: <data_dir>/pawpal.db (bolt) or <data_dir>/pawpal.sqlite
//   - LogPath: <data_dir>/pawpal.log
//
// # Error Handling
//
// Load returns errors for unreadable files, TOML parse failures ("parse
// config: ...") and an unknown storage backend. A missing file is not an
// error.
package config
