package main

import (
	"gopkg.in/yaml.v3"

	"github.com/urfave/cli/v2"
)

func runConfig(cCtx *cli.Context) error {
	cfg, err := loadConfig(cCtx)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(cCtx.App.Writer)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}
