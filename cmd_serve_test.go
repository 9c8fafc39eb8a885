package main

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ai_content_studio/config"
)

func waitRun(t *testing.T, errc <-chan error) error {
	t.Helper()
	select {
	case err := <-errc:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("servers did not stop")
		return nil
	}
}

func TestNewHTTPServers(t *testing.T) {
	api := http.NotFoundHandler()

	servers := newHTTPServers(config.ServerConfig{Addr: ":8080", MetricsAddr: ":2112", ReadTimeout: time.Second}, api)
	require.Len(t, servers, 2)
	assert.Equal(t, ":8080", servers[0].Addr)
	assert.Equal(t, time.Second, servers[0].ReadTimeout)
	assert.Equal(t, ":2112", servers[1].Addr)

	servers = newHTTPServers(config.ServerConfig{Addr: ":8080"}, api)
	assert.Len(t, servers, 1)
}

func TestRunServersStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	servers := newHTTPServers(config.ServerConfig{Addr: "127.0.0.1:0", MetricsAddr: "127.0.0.1:0"}, http.NotFoundHandler())

	errc := make(chan error, 1)
	go func() { errc <- runServers(ctx, servers, zap.NewNop()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	assert.NoError(t, waitRun(t, errc))
}

func TestRunServersListenFailureStopsOthers(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	servers := newHTTPServers(config.ServerConfig{
		Addr:        ln.Addr().String(), // already taken
		MetricsAddr: "127.0.0.1:0",
	}, http.NotFoundHandler())

	errc := make(chan error, 1)
	go func() { errc <- runServers(context.Background(), servers, zap.NewNop()) }()

	err = waitRun(t, errc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "address already in use")
}
