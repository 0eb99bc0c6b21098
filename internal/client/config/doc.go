// Package config loads runtime configuration for the authdemo CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, after loading an optional .env file with
//     godotenv: AUTHDEMO_BASE_URL, AUTHDEMO_DB, AUTHDEMO_LOG_LEVEL,
//     AUTHDEMO_REQUEST_TIMEOUT (a Go duration such as "5s").
//  3. Optional JSON file selected via -c or -config.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the auth API
//	-d string   path of the local SQLite database
//	-l string   log level
//	-t int      request timeout (seconds)
//
// # JSON schema
//
//	{
//	  "base_url": "http://localhost:8090/auth",
//	  "db_path": "authdemo.db",
//	  "log_level": "debug",
//	  "request_timeout": "10s"
//	}
//
// A trailing slash on the base URL is dropped, because endpoints ("/signup",
// "/whoami", "/5") are appended to it verbatim.
package config
