package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/careerkit/internal/flagx"
	"github.com/dmitrijs2005/careerkit/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	DataDir            string         `json:"data_dir"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
	SettleWindow       timex.Duration `json:"settle_window"`
	PingInterval       timex.Duration `json:"ping_interval"`
}

// parseJson overlays cfg with the file named by -c/-config. Missing fields
// keep their current value; read or decode errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.DataDir != "" {
		cfg.DataDir = jc.DataDir
	}
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.SettleWindow.Duration > 0 {
		cfg.SettleWindow = jc.SettleWindow.Duration
	}
	if jc.PingInterval.Duration > 0 {
		cfg.PingInterval = jc.PingInterval.Duration
	}
}
