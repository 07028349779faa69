package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/careerkit/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags. Only
// -a, -d, -t, -w and -p are looked at (see flagx.FilterArgs).
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-t", "-w", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.StringVar(&cfg.DataDir, "d", cfg.DataDir, "local data directory")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	settle := fs.Int("w", int(cfg.SettleWindow.Milliseconds()), "settle window (in milliseconds)")
	ping := fs.Int("p", int(cfg.PingInterval.Seconds()), "server ping interval (in seconds, 0 disables)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	cfg.SettleWindow = time.Duration(*settle) * time.Millisecond
	cfg.PingInterval = time.Duration(*ping) * time.Second
}
