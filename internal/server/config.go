package server

import (
	"net"
	"strconv"
	"time"
)

// Config holds the settings of a Server.
type Config struct {
	// Host to bind; empty binds every interface.
	Host string
	// Port to listen on.
	Port int

	// RequestRate and RequestBurst bound the /request debug endpoints per
	// client IP. A non-positive rate disables the limit.
	RequestRate  float64
	RequestBurst int

	// MaxBodyBytes caps request bodies. Zero disables the cap.
	MaxBodyBytes int64

	ShutdownTimeout time.Duration
}

// DefaultConfig returns the configuration used when no flags are given.
func DefaultConfig() Config {
	return Config{
		Port:            8080,
		RequestRate:     10,
		RequestBurst:    20,
		MaxBodyBytes:    1 << 20,
		ShutdownTimeout: 10 * time.Second,
	}
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// BaseURL is the URL the API is documented at.
func (c Config) BaseURL() string {
	host := c.Host
	if host == "" {
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, strconv.Itoa(c.Port))
}
