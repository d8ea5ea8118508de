package netutil

import (
	"errors"
	"net"
	"testing"
)

func freeAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	_ = ln.Close()
	return addr
}

func busyAddr(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { _ = ln.Close() })
	return ln.Addr().String()
}

func TestSelectBindAddrPreferredFree(t *testing.T) {
	addr := freeAddr(t)

	got, err := SelectBindAddr(addr, nil, false)
	if err != nil {
		t.Fatalf("SelectBindAddr() error = %v", err)
	}
	if got != addr {
		t.Fatalf("SelectBindAddr() = %q, want %q", got, addr)
	}
}

func TestSelectBindAddrFallback(t *testing.T) {
	busy := busyAddr(t)
	free := freeAddr(t)

	got, err := SelectBindAddr(busy, []string{busy, free}, true)
	if err != nil {
		t.Fatalf("SelectBindAddr() error = %v", err)
	}
	if got != free {
		t.Fatalf("SelectBindAddr() = %q, want %q", got, free)
	}
}

func TestSelectBindAddrNoFallback(t *testing.T) {
	busy := busyAddr(t)

	if _, err := SelectBindAddr(busy, []string{freeAddr(t)}, false); err == nil {
		t.Fatal("SelectBindAddr() = nil error; want preferred in use")
	}
}

func TestSelectBindAddrExhausted(t *testing.T) {
	busy := busyAddr(t)

	_, err := SelectBindAddr(busy, []string{busy}, true)
	if !errors.Is(err, ErrNoBindAddr) {
		t.Fatalf("SelectBindAddr() error = %v; want ErrNoBindAddr", err)
	}
}
