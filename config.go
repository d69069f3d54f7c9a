// config.go
// Copyright(c) 2024-2026 skimmer contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/skimmer-sim/skimmer/log"
	"github.com/skimmer-sim/skimmer/renderer"
	"github.com/skimmer-sim/skimmer/sim"
	"github.com/skimmer-sim/skimmer/terrain"
)

var ErrInvalidFrameRate = errors.New("Target frame rate must be between 1 and 240")

// GlobalConfig collects the startup configuration for all of the
// subsystems. It is read once at startup and immutable afterwards; the
// core packages validate their own sections before initializing.
type GlobalConfig struct {
	Version int

	TargetFPS int

	Terrain terrain.Params
	Sim     sim.Config
	Render  renderer.Config
}

const configVersion = 1

func defaultConfig() *GlobalConfig {
	return &GlobalConfig{
		Version:   configVersion,
		TargetFPS: 30,
		Terrain:   terrain.DefaultParams(),
		Sim:       sim.DefaultConfig(),
		Render:    renderer.DefaultConfig(),
	}
}

func (gc *GlobalConfig) Validate() error {
	if gc.TargetFPS < 1 || gc.TargetFPS > 240 {
		return ErrInvalidFrameRate
	}
	if err := gc.Terrain.Validate(); err != nil {
		return err
	}
	if err := gc.Sim.Validate(); err != nil {
		return err
	}
	return gc.Render.Validate()
}

func configFilePath(lg *log.Logger) string {
	dir, err := os.UserConfigDir()
	if err != nil {
		lg.Errorf("Unable to find user config dir: %v", err)
		dir = "."
	}

	dir = filepath.Join(dir, "Skimmer")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		lg.Errorf("%s: unable to make directory for config file: %v", dir, err)
	}

	return filepath.Join(dir, "config.json")
}

func (gc *GlobalConfig) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	return enc.Encode(gc)
}

func (gc *GlobalConfig) Save(lg *log.Logger) error {
	fn := configFilePath(lg)
	lg.Infof("Saving config to: %s", fn)
	f, err := os.Create(fn)
	if err != nil {
		return err
	}
	defer f.Close()

	return gc.Encode(f)
}

// LoadOrMakeDefaultConfig reads the config file if it exists, writing a
// fresh default one otherwise. A config that fails validation is an
// error; silently flying with broken physics constants isn't an option.
func LoadOrMakeDefaultConfig(lg *log.Logger) (*GlobalConfig, error) {
	fn := configFilePath(lg)

	b, err := os.ReadFile(fn)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		gc := defaultConfig()
		if err := gc.Save(lg); err != nil {
			lg.Errorf("%s: unable to write default config: %v", fn, err)
		}
		return gc, nil
	}

	gc := defaultConfig()
	if err := json.Unmarshal(b, gc); err != nil {
		return nil, err
	}
	if gc.Version != configVersion {
		lg.Warnf("%s: config version %d, expected %d; using defaults", fn, gc.Version, configVersion)
		gc = defaultConfig()
	}

	if err := gc.Validate(); err != nil {
		return nil, err
	}
	return gc, nil
}
