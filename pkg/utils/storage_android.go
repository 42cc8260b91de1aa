//go:build android

package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// androidDataRoot 应用私有数据目录的根
const androidDataRoot = "/data/data"

// EnsureStorageDir 在打开 gdata 之前准备 Android 存储目录
// gdata 在 Android 上写入 /data/data/{package}/saves，但不会自己创建该目录
func EnsureStorageDir() error {
	dir, err := StorageDir()
	if err != nil {
		return err
	}

	saves := filepath.Join(dir, "saves")
	if err := os.MkdirAll(saves, 0o755); err != nil {
		return fmt.Errorf("failed to create saves directory %s: %w", saves, err)
	}

	probe := filepath.Join(saves, ".write_test")
	if err := os.WriteFile(probe, nil, 0o644); err != nil {
		return fmt.Errorf("saves directory %s is not writable: %w", saves, err)
	}
	return os.Remove(probe)
}

// StorageDir 返回应用私有数据目录
// 包名取自 /proc/self/cmdline
func StorageDir() (string, error) {
	cmdline, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", fmt.Errorf("failed to detect Android package: %w", err)
	}
	if i := bytes.IndexByte(cmdline, 0); i >= 0 {
		cmdline = cmdline[:i]
	}
	pkg := string(bytes.TrimSpace(cmdline))
	if pkg == "" {
		return "", fmt.Errorf("failed to detect Android package: empty /proc/self/cmdline")
	}
	return filepath.Join(androidDataRoot, pkg), nil
}
