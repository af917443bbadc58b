package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/palemoky/schooldata/internal/config"
	"github.com/palemoky/schooldata/internal/logger"
)

const defaultServerEntry = "sqlite-schule"

// clientConfig is the mcpServers block MCP clients such as Claude Desktop read
type clientConfig struct {
	MCPServers map[string]serverEntry `json:"mcpServers"`
}

type serverEntry struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env,omitempty"`
}

type mcpConfigFlags struct {
	server string
	name   string
	out    string
}

func newMCPConfigCmd() *cobra.Command {
	var flags mcpConfigFlags

	cmd := &cobra.Command{
		Use:   "mcp-config",
		Short: "Print the MCP client configuration for the query server",
		Long: "Print the mcpServers entry that starts the query server over stdio against this database. " +
			"Paths are made absolute so the client can start the server from any directory.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			server := flags.server
			if server == "" {
				server, err = defaultServerPath()
				if err != nil {
					return err
				}
			}

			data, err := buildClientConfig(flags.name, server, cfg.Database.Path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Add the following to the MCP client configuration (e.g. claude_desktop_config.json):")
			fmt.Fprintln(out)
			fmt.Fprintln(out, string(data))

			if flags.out != "" {
				if err := os.WriteFile(flags.out, append(data, '\n'), 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", flags.out, err)
				}
				logger.Info("MCP client configuration written", zap.String("path", flags.out))
				fmt.Fprintf(out, "\nConfiguration also written to %s\n", flags.out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&flags.server, "server", "", "Path to the server binary (default: 'server' next to this executable)")
	cmd.Flags().StringVar(&flags.name, "name", defaultServerEntry, "Name of the entry under mcpServers")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "Also write the configuration to this file")

	return cmd
}

// defaultServerPath assumes both binaries are installed side by side
func defaultServerPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	return filepath.Join(filepath.Dir(exe), "server"), nil
}

// buildClientConfig renders the mcpServers JSON with absolute server and database paths
func buildClientConfig(name, server, dbPath string) ([]byte, error) {
	if name == "" {
		return nil, fmt.Errorf("server entry name must not be empty")
	}

	absServer, err := filepath.Abs(server)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve server path: %w", err)
	}
	absDB, err := filepath.Abs(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database path: %w", err)
	}

	cfg := clientConfig{
		MCPServers: map[string]serverEntry{
			name: {
				Command: absServer,
				Args:    []string{},
				Env: map[string]string{
					"SCHULE_DB_PATH":   absDB,
					"SCHULE_TRANSPORT": config.TransportStdio,
				},
			},
		},
	}
	return json.MarshalIndent(cfg, "", "  ")
}
