package fsport_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/turboladen/selfie/internal/fsport"
)

func TestOSFilesystem_WriteReadRoundTrip(t *testing.T) {
	fs := fsport.NewOSFilesystem()
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "pkg.yaml")

	if err := fs.WriteFile(path, []byte("name: jq\n")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if !fs.PathExists(path) {
		t.Error("expected PathExists to report true after WriteFile")
	}

	data, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "name: jq\n" {
		t.Errorf("data = %q, want %q", data, "name: jq\n")
	}
}

func TestOSFilesystem_ReadFileNotFound(t *testing.T) {
	fs := fsport.NewOSFilesystem()
	_, err := fs.ReadFile(filepath.Join(t.TempDir(), "missing.yaml"))

	var fsErr fsport.Error
	if !errors.As(err, &fsErr) || fsErr.Kind != fsport.KindNotFound {
		t.Fatalf("err = %v, want fsport.Error{Kind: KindNotFound}", err)
	}
}

func TestOSFilesystem_RemoveFile(t *testing.T) {
	fs := fsport.NewOSFilesystem()
	dir := t.TempDir()
	path := filepath.Join(dir, "pkg.yaml")
	if err := fs.WriteFile(path, []byte("x")); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := fs.RemoveFile(path); err != nil {
		t.Fatalf("RemoveFile: %v", err)
	}
	if fs.PathExists(path) {
		t.Error("expected file to be gone after RemoveFile")
	}
}

func TestOSFilesystem_ListDirectory(t *testing.T) {
	fs := fsport.NewOSFilesystem()
	dir := t.TempDir()
	for _, name := range []string{"a.yaml", "b.yml"} {
		if err := fs.WriteFile(filepath.Join(dir, name), []byte("x")); err != nil {
			t.Fatalf("WriteFile: %v", err)
		}
	}

	entries, err := fs.ListDirectory(dir)
	if err != nil {
		t.Fatalf("ListDirectory: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("entries = %v, want 2", entries)
	}
}

func TestOSFilesystem_ExpandPath(t *testing.T) {
	fs := fsport.NewOSFilesystem()
	expanded, err := fs.ExpandPath("~/packages")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if !filepath.IsAbs(expanded) {
		t.Errorf("expanded = %q, want an absolute path", expanded)
	}
}

func TestOSFilesystem_ConfigDirEnvOverride(t *testing.T) {
	t.Setenv(fsport.ConfigDirEnvVar, "/custom/selfie-config")
	fs := fsport.NewOSFilesystem()

	dir, err := fs.ConfigDir()
	if err != nil {
		t.Fatalf("ConfigDir: %v", err)
	}
	if dir != "/custom/selfie-config" {
		t.Errorf("ConfigDir = %q, want /custom/selfie-config", dir)
	}
}
