// Package config loads runtime configuration for the careerkit CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the identity server
//	-d string   local data directory
//	-t int      request timeout (seconds)
//	-w int      settle window for manual navigation flows (milliseconds)
//	-p int      server ping interval (seconds, 0 disables)
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "3s" or
// integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "data_dir": ".careerkit",
//	  "request_timeout": "10s",
//	  "settle_window": "2s",
//	  "ping_interval": "30s"
//	}
package config
