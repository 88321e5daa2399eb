//go:build linux

package platform

import (
	"fmt"
	"path/filepath"
	"strings"
)

// autostartPath follows the XDG autostart layout.
func (service *platformService) autostartPath(appName string) (string, error) {
	configDir, err := service.GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "autostart", desktopFileName(appName)), nil
}

func autostartEntry(appName, execPath string) string {
	return buildDesktopEntry(appName, execPath)
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config")
}

func desktopFileName(appName string) string {
	return slug(appName) + ".desktop"
}

func buildDesktopEntry(appName, execPath string) string {
	execLine := execPath
	if strings.ContainsAny(execLine, " \t") && !strings.HasPrefix(execLine, `"`) {
		execLine = `"` + execLine + `"`
	}

	var entry strings.Builder
	entry.WriteString("[Desktop Entry]\n")
	fields := [][2]string{
		{"Type", "Application"},
		{"Name", appName},
		{"Comment", "Pomodoro work and break timer"},
		{"Exec", execLine},
		{"Icon", slug(appName)},
		{"Terminal", "false"},
		{"X-GNOME-Autostart-enabled", "true"},
	}
	for _, field := range fields {
		fmt.Fprintf(&entry, "%s=%s\n", field[0], field[1])
	}
	return entry.String()
}
