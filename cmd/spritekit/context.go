package main

import (
	"log/slog"

	"github.com/milk9111/spritekit/config"
	"github.com/milk9111/spritekit/logging"
)

// commandContext lazily loads configuration and the logger shared by all
// subcommands.
type commandContext struct {
	configFlag *string
	logLevel   *string

	cfg    *config.Config
	logger *slog.Logger
}

func newCommandContext(configFlag, logLevel *string) *commandContext {
	return &commandContext{configFlag: configFlag, logLevel: logLevel}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, _, _, err := config.Load(*c.configFlag)
	if err != nil {
		return nil, err
	}
	if c.logLevel != nil && *c.logLevel != "" {
		cfg.LogLevel = *c.logLevel
	}
	c.cfg = cfg
	return cfg, nil
}

func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	if c.logger != nil {
		return c.logger, nil
	}
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	c.logger = logger
	return logger, nil
}
