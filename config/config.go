package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the oefen configuration directory.
// Respects XDG_CONFIG_HOME on Unix, APPDATA on Windows.
func Dir() string {
	var base string

	if runtime.GOOS == "windows" {
		base = os.Getenv("APPDATA")
		if base == "" {
			base = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	} else {
		base = os.Getenv("XDG_CONFIG_HOME")
		if base == "" {
			home, _ := os.UserHomeDir()
			base = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(base, "oefen")
}

// InitFile returns the path to init.lua
func InitFile() string {
	return filepath.Join(Dir(), "init.lua")
}

// File returns the path to config.yaml
func File() string {
	return filepath.Join(Dir(), "config.yaml")
}

// LogFile returns the default log destination for interactive runs.
func LogFile() string {
	return filepath.Join(Dir(), "oefen.log")
}
