package main

import (
	"fmt"
	"io"
	"path/filepath"

	"dprefs/internal/config"
	"dprefs/internal/dprefs"
	"dprefs/internal/logging"
)

var logger = logging.For("cli")

// app is the state shared by every subcommand once the store is bound.
type app struct {
	Prefs   *dprefs.Prefs
	Context dprefs.StorageContext
	Out     io.Writer
	Err     io.Writer
}

// appProvider opens the app on first use from flag values captured before
// Execute.
type appProvider struct {
	app *app

	ConfigPath string
	DataDir    string
	Name       string
	LogLevel   string
	Out        io.Writer
	Err        io.Writer
}

func (p *appProvider) Get() (*app, error) {
	if p.app != nil {
		return p.app, nil
	}

	cfg, err := config.Load(p.ConfigPath)
	if err != nil {
		return nil, err
	}
	if p.DataDir != "" {
		cfg.Store.DataDir = p.DataDir
	}
	if p.Name != "" {
		cfg.Store.Name = p.Name
	}
	if p.LogLevel != "" {
		cfg.Logging.Level = p.LogLevel
	}
	logging.Init(p.Err, cfg.Logging.Level, cfg.Logging.Format)

	sc, err := dprefs.NewStorageContext(cfg)
	if err != nil {
		return nil, err
	}
	prefs := dprefs.New(dprefs.WithSerializedWrites(cfg.Facade.SerializeWrites))
	if err := prefs.Initialize(sc); err != nil {
		return nil, fmt.Errorf("opening %s: %w", filepath.Join(sc.DataDir, dprefs.DBFile), err)
	}
	logger.Debug("store ready", "name", sc.Name, "key_id", sc.MasterKey.KeyID)

	p.app = &app{Prefs: prefs, Context: sc, Out: p.Out, Err: p.Err}
	return p.app, nil
}

// Close releases the store if it was opened.
func (p *appProvider) Close() error {
	if p.app == nil {
		return nil
	}
	err := p.app.Prefs.Close()
	p.app = nil
	return err
}
