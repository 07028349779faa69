package config

import "time"

// Config holds runtime settings for the careerkit CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the identity server's gRPC endpoint.
//   - DataDir: directory holding the local session database.
//   - RequestTimeout: upper bound for a single call to the server.
//   - SettleWindow: how long a manual navigation flow may suppress the
//     automatic reconciler before suppression is lifted regardless.
//   - PingInterval: how often the CLI probes the server to show whether it
//     is online. Zero disables the probe.
//
// An empty DataDir keeps the session in memory only.
type Config struct {
	ServerEndpointAddr string
	DataDir            string
	RequestTimeout     time.Duration
	SettleWindow       time.Duration
	PingInterval       time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.DataDir = ".careerkit"
	c.RequestTimeout = 10 * time.Second
	c.SettleWindow = 2 * time.Second
	c.PingInterval = 30 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
