package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/decompose/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagMaxSessions int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Decompose SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own level picker and game. Progress, best times
and saved attempts are kept per SSH user name in the server's database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, uses server.host_key_path from the config (generated if missing)

Examples:
  decompose serve                           # Listen on the configured address
  decompose serve --ssh :2222               # Listen on port 2222
  decompose serve --host-key ./my_host_key  # Use specific host key
  decompose serve --max-sessions 50         # Turn players away past 50

Users can connect with:
  ssh localhost -p 2222`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting (default from config)")
	serveCmd.Flags().IntVar(&flagMaxSessions, "max-sessions", -1, "Concurrent player limit, 0 for none (default from config)")
}

func runServe(_ *cobra.Command, _ []string) {
	cfg := tui.SSHServerConfigFrom(appConfig)
	cfg.Pack = flagPack
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}
	if flagMaxSessions >= 0 {
		cfg.MaxSessions = flagMaxSessions
	}

	if _, _, err := loadPack(cfg.Pack); err != nil {
		fail("%v", err)
	}

	server, err := tui.NewSSHServer(cfg, logger.WithPrefix("decompose-ssh"))
	if err != nil {
		fail("creating server: %v", err)
	}

	logger.Info("press Ctrl+C to stop", "address", server.Addr(), "pack", cfg.Pack)

	if err := server.ListenAndServe(); err != nil {
		fail("server: %v", err)
	}
}
