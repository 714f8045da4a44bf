package cmd

import (
	"testing"

	"github.com/spf13/cobra"

	"github.com/abhisek/fluently/internal/config"
)

func TestServeDBPath(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("db", "", "")
	cfg := &config.Config{DBPath: "/tmp/from-config.db"}

	if got := serveDBPath(cmd, cfg); got != "/tmp/from-config.db" {
		t.Errorf("expected configured path, got %q", got)
	}

	if err := cmd.Flags().Set("db", "/tmp/override.db"); err != nil {
		t.Fatalf("set flag: %v", err)
	}
	if got := serveDBPath(cmd, cfg); got != "/tmp/override.db" {
		t.Errorf("expected flag override, got %q", got)
	}
}
