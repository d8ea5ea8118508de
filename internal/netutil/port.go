package netutil

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
)

// ErrNoBindAddr is returned when neither the preferred address nor any candidate is free.
var ErrNoBindAddr = errors.New("no available bind addresses")

// SelectBindAddr returns preferred when it can be listened on, otherwise the first free
// candidate if autoFallback is set.
func SelectBindAddr(preferred string, candidates []string, autoFallback bool) (string, error) {
	if preferred != "" {
		if IsAddrAvailable(preferred) {
			return preferred, nil
		}
		if !autoFallback {
			return "", fmt.Errorf("preferred bind address in use: %s", preferred)
		}
		slog.Warn("preferred bind address in use, trying fallbacks", "preferred", preferred)
	}

	seen := map[string]bool{preferred: true}
	for _, addr := range candidates {
		if seen[addr] {
			continue
		}
		seen[addr] = true
		if IsAddrAvailable(addr) {
			return addr, nil
		}
	}
	return "", ErrNoBindAddr
}

// IsAddrAvailable reports whether a TCP listener can be opened on addr.
func IsAddrAvailable(addr string) bool {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return false
	}
	if err := ln.Close(); err != nil {
		slog.Debug("listener close failed", "addr", addr, "error", err)
	}
	return true
}
