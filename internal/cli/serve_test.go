package cli

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"numlist/internal/config"

	"github.com/rs/zerolog"
)

func TestServe_StopsOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	cfg := config.DefaultServer()
	cfg.DatasetSize = 1000

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, cfg, zerolog.Nop(), ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/health")
	if err != nil {
		cancel()
		t.Fatalf("health: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || strings.TrimSpace(string(body)) != "ok" {
		t.Fatalf("unexpected health response: %d %q", resp.StatusCode, body)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("expected clean shutdown; got %v", err)
		}
	case <-time.After(10 * time.Second):
		t.Fatalf("serve did not stop after cancel")
	}
}

func TestServe_FlagsOverrideConfig(t *testing.T) {
	cmd := newServeCmd(&App{})
	if err := cmd.ParseFlags([]string{"--addr", " :6000 ", "--gzip=false", "--cors-origin", "http://a,http://b"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	var flags config.Server
	flags.Addr, _ = cmd.Flags().GetString("addr")
	flags.Gzip, _ = cmd.Flags().GetBool("gzip")
	flags.CORSOrigins, _ = cmd.Flags().GetStringSlice("cors-origin")

	cfg := config.DefaultServer()
	cfg.SearchRate = 5
	applyServeFlags(cmd, &cfg, flags)
	if cfg.Addr != ":6000" || cfg.Gzip || len(cfg.CORSOrigins) != 2 {
		t.Fatalf("expected flags applied; got %+v", cfg)
	}
	if cfg.SearchRate != 5 || cfg.DatasetSize != config.DefaultServer().DatasetSize {
		t.Fatalf("expected unset flags to leave config alone; got %+v", cfg)
	}
}
