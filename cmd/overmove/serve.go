package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/overmove/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the OverMove SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the level menu.
History is stored per-server (all users share the same database).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.overmove/host_key

Examples:
  overmove serve                           # Listen on :23234 with auto-generated key
  overmove serve --ssh :2222               # Listen on port 2222
  overmove serve --host-key ./my_host_key  # Use specific host key
  overmove serve --db ./history.db         # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) error {
	lvls, err := loadLevels()
	if err != nil {
		return err
	}

	srvCfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Levels:      lvls,
		Runtime:     cfg.Runtime(80, 24, 0),
	}

	srvLogger := logger.WithPrefix("overmove-ssh")
	if !cmd.Flags().Changed("log-level") {
		// Session events are logged at info
		srvLogger.SetLevel(log.InfoLevel)
	}

	server, err := tui.NewSSHServer(srvCfg, srvLogger)
	if err != nil {
		return err
	}

	fmt.Printf("Starting OverMove SSH server on %s\n", srvCfg.Address)
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
