package prefs

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const iconsFile = "icons.json"

func iconsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir = filepath.Join(dir, "salesboard")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, iconsFile), nil
}

// SaveIcons stores per-category icon overrides.
func SaveIcons(icons map[string]string) error {
	path, err := iconsPath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(icons, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// LoadIcons returns the overrides, or nil when none were saved.
func LoadIcons() (map[string]string, error) {
	path, err := iconsPath()
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var icons map[string]string
	if err := json.Unmarshal(data, &icons); err != nil {
		return nil, err
	}
	return icons, nil
}
