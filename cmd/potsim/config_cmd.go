package main

import (
	"fmt"
	"os"

	"github.com/lox/potsim/internal/config"
	"github.com/lox/potsim/internal/fileutil"
)

type ConfigCmd struct {
	Init ConfigInitCmd `cmd:"" help:"Write the default configuration as HCL"`
	Show ConfigShowCmd `cmd:"" help:"Print the effective configuration after environment overrides"`
}

type ConfigInitCmd struct {
	Path  string `arg:"" default:"potsim.hcl" type:"path" help:"Destination file"`
	Force bool   `short:"f" help:"Overwrite an existing file"`
}

func (c *ConfigInitCmd) Run(g *Globals) error {
	logger := g.Logger()

	if !c.Force {
		if _, err := os.Stat(c.Path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", c.Path)
		}
	}
	if err := fileutil.WriteFileAtomic(c.Path, config.EncodeHCL(config.Default()), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	logger.Info("Wrote default configuration", "path", c.Path)
	return nil
}

type ConfigShowCmd struct {
	Config string `short:"c" default:"potsim.hcl" type:"path" help:"Configuration file (.hcl, .yaml or legacy .json)"`
}

func (c *ConfigShowCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	_, err = os.Stdout.Write(config.EncodeHCL(cfg))
	return err
}
