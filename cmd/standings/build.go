package main

import (
	"github.com/okian/sdc-standings/internal/adapters/render"
	"github.com/urfave/cli/v2"
)

func runBuild(cCtx *cli.Context) error {
	cfg, err := loadConfig(cCtx)
	if err != nil {
		return err
	}
	svc, err := newService(cfg)
	if err != nil {
		return err
	}
	payload, err := svc.Build(cCtx.Context)
	if err != nil {
		return err
	}
	if err := render.Console(cCtx.App.Writer, payload.Rows, cfg.Cutoff); err != nil {
		return err
	}
	return publish(cCtx.Context, cfg, newWriter(cfg), payload)
}
