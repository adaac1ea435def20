package fsport

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"syscall"

	homedir "github.com/mitchellh/go-homedir"
)

// ConfigDirEnvVar overrides the OS-chosen config directory (SELFIE_CONFIG_DIR
// from spec.md §6).
const ConfigDirEnvVar = "SELFIE_CONFIG_DIR"

// OSFilesystem is the real, disk-backed FS implementation.
type OSFilesystem struct{}

// NewOSFilesystem returns the real filesystem port.
func NewOSFilesystem() *OSFilesystem { return &OSFilesystem{} }

func (OSFilesystem) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, translateErr(path, err)
	}
	return data, nil
}

func (OSFilesystem) WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return translateErr(dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return translateErr(path, err)
	}
	return nil
}

func (OSFilesystem) RemoveFile(path string) error {
	if err := os.Remove(path); err != nil {
		return translateErr(path, err)
	}
	return nil
}

func (OSFilesystem) PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (OSFilesystem) ListDirectory(path string) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, translateErr(path, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, filepath.Join(path, e.Name()))
	}
	sort.Strings(names)
	return names, nil
}

func (OSFilesystem) Canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", translateErr(path, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			// Non-existent paths (e.g. a file about to be created) still
			// canonicalize to their absolute form.
			return abs, nil
		}
		return "", translateErr(path, err)
	}
	return resolved, nil
}

func (OSFilesystem) ExpandPath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", HomeDirUnknown(err)
	}
	return expanded, nil
}

func (OSFilesystem) ConfigDir() (string, error) {
	if override := os.Getenv(ConfigDirEnvVar); override != "" {
		return override, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		home, herr := homedir.Dir()
		if herr != nil {
			return "", HomeDirUnknown(herr)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "selfie"), nil
}

func translateErr(path string, err error) error {
	switch {
	case errors.Is(err, os.ErrNotExist):
		return NotFound(path)
	case errors.Is(err, os.ErrPermission):
		return PermissionDenied(path, err)
	}
	if errors.Is(err, syscall.ENOTDIR) {
		return NotADirectory(path)
	}
	return Other(path, err)
}
