// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
)

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// ListenAddr picks the address a server binds to. An explicit addr wins;
// otherwise the server listens on every interface at port.
func ListenAddr(addr string, port int) string {
	if addr = strings.TrimSpace(addr); addr != "" {
		return addr
	}
	return net.JoinHostPort("", strconv.Itoa(port))
}
