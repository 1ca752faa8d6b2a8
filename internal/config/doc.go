// Package config loads moodlog's TOML configuration.
//
// # Discovery
//
// Load follows this order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/moodlog/config.toml
//  3. If the file doesn't exist, fall back to defaults
//  4. Missing or empty fields keep their defaults
//  5. MOODLOG_API_URL, when set, replaces api_url
//
// # TOML Format
//
//	api_url = "http://localhost:8000"
//	session_path = "~/.config/moodlog/session.toml"
//	log_file = "~/.local/share/moodlog/moodlog.log"
//	log_level = "info"      # debug, info, warn, error
//	log_format = "json"     # json, console
//	theme = "Nightfox"
//	attach_token = true     # install the bearer-token interceptor
//	request_ids = true      # send X-Request-ID on every call
//	request_timeout = "0s"  # zero disables the client timeout
//
// Every field is optional. Tilde expansion is performed on paths.
//
// attach_token selects between the two historical client variants: with it
// disabled the client never reads the session store on its own and only
// the endpoints that take an explicit token authenticate.
package config
