package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	cfg "github.com/teachlens/teachlens-pipeline/config"
	"github.com/teachlens/teachlens-pipeline/logging"
)

// app is the state shared by subcommands once flags are parsed.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg *cfg.Root
	log *logrus.Logger
}

func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "teachlens",
		Short:         "Evaluate recorded lessons and produce teaching feedback reports",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (default: config/$CONFIG_ENV/config.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level, overrides pipeline.log_level")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "text or json, overrides pipeline.log_format")

	root.AddCommand(
		newEvaluateCmd(a),
		newProcessCmd(a),
		newServeCmd(a),
		newVersionCmd(a),
	)
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	c, err := cfg.Load(a.configPath)
	if err != nil {
		return err
	}
	level, format := c.Pipeline.LogLvl, c.Pipeline.LogFormat
	if a.logLevel != "" {
		level = a.logLevel
	}
	if a.logFormat != "" {
		format = a.logFormat
	}
	log, err := logging.NewWithOutput(cmd.ErrOrStderr(), level, format)
	if err != nil {
		return err
	}
	a.cfg, a.log = c, log
	return nil
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
