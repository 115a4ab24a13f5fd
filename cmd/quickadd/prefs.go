package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

const (
	outputText = "text"
	outputJSON = "json"
)

// prefs is the optional ~/.config/quickadd/config.toml file.
//
//	timezone = "Asia/Ho_Chi_Minh"
//	output   = "json"
type prefs struct {
	Timezone string `toml:"timezone"`
	Output   string `toml:"output"`
}

func defaultPrefs() prefs {
	return prefs{Timezone: "Local", Output: outputText}
}

func defaultPrefsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "quickadd", "config.toml")
}

// loadPrefs reads path over the defaults. A missing file is only an error when explicit is set.
func loadPrefs(path string, explicit bool) (prefs, error) {
	p := defaultPrefs()
	if path == "" {
		return p, nil
	}

	var file prefs
	if _, err := toml.DecodeFile(path, &file); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return p, nil
		}
		return p, fmt.Errorf("reading prefs %s: %w", path, err)
	}

	if file.Timezone != "" {
		p.Timezone = file.Timezone
	}
	if file.Output != "" {
		p.Output = file.Output
	}
	if p.Output != outputText && p.Output != outputJSON {
		return p, fmt.Errorf("prefs %s: output must be %q or %q, got %q", path, outputText, outputJSON, p.Output)
	}
	return p, nil
}
