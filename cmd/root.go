package cmd

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/xkilldash9x/prahari/api/schemas"
	"github.com/xkilldash9x/prahari/internal/analysis"
	"github.com/xkilldash9x/prahari/internal/config"
	"github.com/xkilldash9x/prahari/internal/llmclient"
	"github.com/xkilldash9x/prahari/internal/observability"
)

// llmFactory builds the model client; tests swap it for a mock.
type llmFactory func(ctx context.Context, cfg config.LLMConfig, logger *zap.Logger) (schemas.LLMClient, error)

// app carries the state shared by every subcommand of one root command.
type app struct {
	v       *viper.Viper
	cfgFile string
	cfg     *config.Config
	logger  *zap.Logger
	newLLM  llmFactory
}

func newApp() *app {
	return &app{v: viper.New(), newLLM: llmclient.NewClient}
}

// NewRootCommand builds a fresh command tree with its own configuration.
func NewRootCommand() *cobra.Command {
	return newRootCmd(newApp())
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "prahari",
		Short:         "PrahariAI detects bots, impersonators and disinformation agents.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initialize(cmd); err != nil {
				return err
			}
			a.logger.Debug("Starting PrahariAI", zap.String("version", Version), zap.String("command", cmd.Name()))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (default is ./config.yaml or ~/.prahari/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "override the configured log level")
	rootCmd.SetVersionTemplate(`{{printf "%s version %s\n" .Name .Version}}`)

	rootCmd.AddCommand(
		newServeCmd(a),
		newAnalyzeCmd(a),
		newScanCmd(a),
		newGraphCmd(a),
		newEvidenceCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command under ctx and reports the failure, if any.
func Execute(ctx context.Context) error {
	err := NewRootCommand().ExecuteContext(ctx)
	if err != nil {
		observability.GetLogger().Error("Command execution failed", zap.Error(err))
	}
	observability.Sync()
	return err
}

// initialize loads configuration and sets up the global logger.
func (a *app) initialize(cmd *cobra.Command) error {
	config.SetDefaults(a.v)
	if err := a.readConfig(); err != nil {
		return err
	}
	if flag := cmd.Flags().Lookup("log-level"); flag != nil && flag.Changed {
		a.v.Set("logger.level", flag.Value.String())
	}

	cfg, err := config.NewConfigFromViper(a.v)
	if err != nil {
		return err
	}
	a.cfg = cfg

	observability.InitializeLogger(cfg.Logger)
	a.logger = observability.GetLogger()
	return nil
}

// readConfig reads the config file and environment. A missing default config
// file is fine; an explicitly named one must exist.
func (a *app) readConfig() error {
	if a.cfgFile != "" {
		path, err := homedir.Expand(a.cfgFile)
		if err != nil {
			return fmt.Errorf("failed to resolve config path: %w", err)
		}
		a.v.SetConfigFile(path)
	} else {
		a.v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			a.v.AddConfigPath(filepath.Join(home, ".prahari"))
		}
		a.v.SetConfigName("config")
		a.v.SetConfigType("yaml")
	}

	a.v.SetEnvPrefix("PRAHARI")
	a.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	a.v.AutomaticEnv()

	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if a.cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

// analysisService wires the model client into an analysis service. The
// returned close func releases the client.
func (a *app) analysisService(ctx context.Context, metrics *observability.Metrics) (*analysis.Service, func(), error) {
	llm, err := a.newLLM(ctx, a.cfg.LLM, a.logger)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize LLM client: %w", err)
	}
	closeFn := func() {
		if err := llm.Close(); err != nil {
			a.logger.Warn("Failed to close LLM client", zap.Error(err))
		}
	}
	return analysis.NewService(llm, analysis.OptionsFromConfig(a.cfg.LLM), a.logger, metrics), closeFn, nil
}
