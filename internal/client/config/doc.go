// Package config loads runtime configuration for the bookmarker CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file given with --config.
//  3. Global command-line flags and BOOKMARKER_* environment variables,
//     applied by the cli package.
//
// # JSON schema
//
//	{
//	  "server_url": "http://localhost:3333",
//	  "token_file": "/home/me/.config/bookmarker/token",
//	  "request_timeout": "10s"
//	}
package config
