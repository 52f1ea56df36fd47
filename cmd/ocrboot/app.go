package main

import (
	"io"
	"runtime"

	"github.com/ochairo/ocrboot/internal/config"
	"github.com/ochairo/ocrboot/internal/domain-adapters/gateways"
	"github.com/ochairo/ocrboot/internal/domain/services"
	"github.com/ochairo/ocrboot/internal/external-adapters/zaplog"
)

// app bundles what every command needs once configuration is resolved
type app struct {
	cfg      *config.Config
	platform services.Platform
	goos     string
	logger   *zaplog.Logger
	env      *gateways.ProcessEnvironment
}

func newApp(cfg *config.Config, logOut io.Writer) *app {
	platform := services.Platform(cfg.Platform)
	if platform == "" {
		platform = services.DetectPlatform(runtime.GOOS, runtime.GOARCH)
	}

	goos := runtime.GOOS
	if platform.IsWindows() {
		goos = "windows"
	}

	return &app{
		cfg:      cfg,
		platform: platform,
		goos:     goos,
		logger:   zaplog.New(logOut, cfg.LogLevel),
		env:      gateways.NewProcessEnvironment(),
	}
}

func (a *app) templateVars() services.TemplateVars {
	return services.TemplateVars{
		Root:   a.cfg.Root,
		Tools:  a.cfg.Tools,
		Venv:   a.cfg.Venv,
		Python: a.cfg.Python,
		Exe:    a.platform.ExeSuffix(),
	}
}
