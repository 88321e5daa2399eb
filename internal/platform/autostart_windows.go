//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

const registryRunKey = `HKCU\Software\Microsoft\Windows\CurrentVersion\Run`

func (service *platformService) EnableAutostart(appName, execPath string) error {
	if appName == "" {
		return fmt.Errorf("enable autostart: app name is empty")
	}
	if execPath == "" {
		return fmt.Errorf("enable autostart: exec path is empty")
	}

	_, err := runReg("add", registryRunKey, "/v", runValueName(appName), "/t", "REG_SZ", "/d", quoteWindowsPath(execPath), "/f")
	if err != nil {
		return fmt.Errorf("enable autostart: %w", err)
	}
	return nil
}

func (service *platformService) DisableAutostart(appName string) error {
	if appName == "" {
		return fmt.Errorf("disable autostart: app name is empty")
	}

	enabled, _ := service.AutostartEnabled(appName)
	if !enabled {
		return nil
	}
	if _, err := runReg("delete", registryRunKey, "/v", runValueName(appName), "/f"); err != nil {
		return fmt.Errorf("disable autostart: %w", err)
	}
	return nil
}

// AutostartEnabled reports whether the Run key holds a value for appName.
// reg query exits non-zero when the value is missing.
func (service *platformService) AutostartEnabled(appName string) (bool, error) {
	if _, err := runReg("query", registryRunKey, "/v", runValueName(appName)); err != nil {
		return false, nil
	}
	return true, nil
}

func runReg(args ...string) (string, error) {
	output, err := exec.Command("reg", args...).CombinedOutput()
	trimmed := strings.TrimSpace(string(output))
	if err != nil {
		return trimmed, fmt.Errorf("reg %s failed: %w: %s", args[0], err, trimmed)
	}
	return trimmed, nil
}

func runValueName(appName string) string {
	return slug(appName)
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "AppData", "Roaming")
}

func quoteWindowsPath(execPath string) string {
	trimmed := strings.Trim(execPath, `"`)
	return fmt.Sprintf(`"%s"`, trimmed)
}
