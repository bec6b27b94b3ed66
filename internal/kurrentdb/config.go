package kurrentdb

import "fmt"

// Config holds KurrentDB connection configuration. Values are populated
// by internal/config from dely.toml and the DELY_ environment overlay,
// not read directly from the environment here.
type Config struct {
	// Host is the KurrentDB server hostname
	Host string
	// Port is the KurrentDB gRPC/HTTP port (default 2113)
	Port int
	// Insecure disables TLS (for development)
	Insecure bool
	// Username for authentication (optional for insecure mode)
	Username string
	// Password for authentication (optional for insecure mode)
	Password string
}

// ConnectionString returns the esdb:// connection string for EventStore client.
func (c *Config) ConnectionString() string {
	var auth string
	if c.Username != "" && c.Password != "" {
		auth = fmt.Sprintf("%s:%s@", c.Username, c.Password)
	}

	var tls string
	if c.Insecure {
		tls = "?tls=false"
	}

	return fmt.Sprintf("esdb://%s%s:%d%s", auth, c.Host, c.Port, tls)
}
