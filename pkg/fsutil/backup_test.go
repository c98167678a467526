package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/gowikitext/pkg/fsutil"
)

func TestBackupPath(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		path string
		mode fsutil.BackupMode
		want string
	}{
		{
			name: "sidecar mode",
			path: "/pages/Main_Page.wiki",
			mode: fsutil.BackupModeSidecar,
			want: "/pages/Main_Page.wiki.gowikitext.bak",
		},
		{
			name: "none mode returns empty",
			path: "/pages/Main_Page.wiki",
			mode: fsutil.BackupModeNone,
			want: "",
		},
		{
			name: "unknown mode defaults to sidecar",
			path: "/pages/Main_Page.wiki",
			mode: fsutil.BackupMode("unknown"),
			want: "/pages/Main_Page.wiki.gowikitext.bak",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := fsutil.BackupPath(tt.path, tt.mode)
			if got != tt.want {
				t.Errorf("BackupPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDefaultBackupConfig(t *testing.T) {
	t.Parallel()

	cfg := fsutil.DefaultBackupConfig()

	if cfg.Enabled {
		t.Error("expected Enabled = false by default")
	}

	if cfg.Mode != fsutil.BackupModeSidecar {
		t.Errorf("Mode = %q, want %q", cfg.Mode, fsutil.BackupModeSidecar)
	}
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	sidecar := fsutil.BackupConfig{
		Enabled: true,
		Mode:    fsutil.BackupModeSidecar,
	}

	t.Run("creates backup for existing file", func(t *testing.T) {
		t.Parallel()

		content := "== Before healing ==\n<div>unclosed\n"
		path := writePage(t, "page.wiki", content)

		ctx := context.Background()
		created, err := fsutil.CreateBackup(ctx, path, sidecar)

		if err != nil {
			t.Fatalf("CreateBackup() error = %v", err)
		}

		if !created {
			t.Error("expected created = true")
		}

		backupPath := fsutil.BackupPath(path, sidecar.Mode)
		got, err := os.ReadFile(backupPath)
		if err != nil {
			t.Fatalf("read backup: %v", err)
		}

		if string(got) != content {
			t.Errorf("backup content = %q, want %q", got, content)
		}
	})

	t.Run("does not overwrite existing backup", func(t *testing.T) {
		t.Parallel()

		path := writePage(t, "page.wiki", "current revision")
		backupContent := []byte("first revision")

		backupPath := fsutil.BackupPath(path, sidecar.Mode)
		if err := os.WriteFile(backupPath, backupContent, 0644); err != nil {
			t.Fatalf("setup backup: %v", err)
		}

		ctx := context.Background()
		created, err := fsutil.CreateBackup(ctx, path, sidecar)

		if err != nil {
			t.Fatalf("CreateBackup() error = %v", err)
		}

		if created {
			t.Error("expected created = false for existing backup")
		}

		got, err := os.ReadFile(backupPath)
		if err != nil {
			t.Fatalf("read backup: %v", err)
		}

		if string(got) != string(backupContent) {
			t.Errorf("backup content = %q, want %q", got, backupContent)
		}
	})

	t.Run("returns false when disabled", func(t *testing.T) {
		t.Parallel()

		path := writePage(t, "page.wiki", "{{stub}}")

		cfg := fsutil.BackupConfig{
			Enabled: false,
			Mode:    fsutil.BackupModeSidecar,
		}

		ctx := context.Background()
		created, err := fsutil.CreateBackup(ctx, path, cfg)

		if err != nil {
			t.Fatalf("CreateBackup() error = %v", err)
		}

		if created {
			t.Error("expected created = false when disabled")
		}

		backupPath := fsutil.BackupPath(path, cfg.Mode)
		if _, err := os.Stat(backupPath); !os.IsNotExist(err) {
			t.Error("backup should not exist when disabled")
		}
	})

	t.Run("returns false when mode is none", func(t *testing.T) {
		t.Parallel()

		path := writePage(t, "page.wiki", "{{stub}}")

		cfg := fsutil.BackupConfig{
			Enabled: true,
			Mode:    fsutil.BackupModeNone,
		}

		ctx := context.Background()
		created, err := fsutil.CreateBackup(ctx, path, cfg)

		if err != nil {
			t.Fatalf("CreateBackup() error = %v", err)
		}

		if created {
			t.Error("expected created = false when mode is none")
		}
	})

	t.Run("returns false for non-existent file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nonexistent.wiki")

		ctx := context.Background()
		created, err := fsutil.CreateBackup(ctx, path, sidecar)

		if err != nil {
			t.Fatalf("CreateBackup() error = %v", err)
		}

		if created {
			t.Error("expected created = false for non-existent file")
		}
	})

	t.Run("preserves file mode in backup", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "page.wiki")
		if err := os.WriteFile(path, []byte("{{stub}}"), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}

		ctx := context.Background()
		if _, err := fsutil.CreateBackup(ctx, path, sidecar); err != nil {
			t.Fatalf("CreateBackup() error = %v", err)
		}

		backupPath := fsutil.BackupPath(path, sidecar.Mode)
		stat, err := os.Stat(backupPath)
		if err != nil {
			t.Fatalf("stat backup: %v", err)
		}

		if stat.Mode().Perm() != 0600 {
			t.Errorf("backup mode = %o, want %o", stat.Mode().Perm(), 0600)
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		path := writePage(t, "page.wiki", "{{stub}}")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := fsutil.CreateBackup(ctx, path, sidecar); err == nil {
			t.Fatal("expected error for cancelled context")
		}
	})
}

func TestRestoreBackup(t *testing.T) {
	t.Parallel()

	t.Run("restores from backup", func(t *testing.T) {
		t.Parallel()

		backupContent := []byte("first revision")
		path := writePage(t, "page.wiki", "healed revision")

		backupPath := fsutil.BackupPath(path, fsutil.BackupModeSidecar)
		if err := os.WriteFile(backupPath, backupContent, 0644); err != nil {
			t.Fatalf("setup backup: %v", err)
		}

		ctx := context.Background()
		restored, err := fsutil.RestoreBackup(ctx, path, fsutil.BackupModeSidecar)

		if err != nil {
			t.Fatalf("RestoreBackup() error = %v", err)
		}

		if !restored {
			t.Error("expected restored = true")
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read: %v", err)
		}

		if string(got) != string(backupContent) {
			t.Errorf("content = %q, want %q", got, backupContent)
		}
	})

	t.Run("returns false when no backup exists", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "page.wiki")

		ctx := context.Background()
		restored, err := fsutil.RestoreBackup(ctx, path, fsutil.BackupModeSidecar)

		if err != nil {
			t.Fatalf("RestoreBackup() error = %v", err)
		}

		if restored {
			t.Error("expected restored = false when no backup exists")
		}
	})

	t.Run("returns false for none mode", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "page.wiki")

		ctx := context.Background()
		restored, err := fsutil.RestoreBackup(ctx, path, fsutil.BackupModeNone)

		if err != nil {
			t.Fatalf("RestoreBackup() error = %v", err)
		}

		if restored {
			t.Error("expected restored = false for none mode")
		}
	})
}

func TestRemoveBackup(t *testing.T) {
	t.Parallel()

	t.Run("removes existing backup", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "page.wiki")
		backupPath := fsutil.BackupPath(path, fsutil.BackupModeSidecar)

		if err := os.WriteFile(backupPath, []byte("backup"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		removed, err := fsutil.RemoveBackup(path, fsutil.BackupModeSidecar)

		if err != nil {
			t.Fatalf("RemoveBackup() error = %v", err)
		}

		if !removed {
			t.Error("expected removed = true")
		}

		if _, err := os.Stat(backupPath); !os.IsNotExist(err) {
			t.Error("backup should not exist after removal")
		}
	})

	t.Run("returns false when no backup exists", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nonexistent.wiki")

		removed, err := fsutil.RemoveBackup(path, fsutil.BackupModeSidecar)

		if err != nil {
			t.Fatalf("RemoveBackup() error = %v", err)
		}

		if removed {
			t.Error("expected removed = false when no backup exists")
		}
	})

	t.Run("returns false for none mode", func(t *testing.T) {
		t.Parallel()

		removed, err := fsutil.RemoveBackup("/any/path", fsutil.BackupModeNone)

		if err != nil {
			t.Fatalf("RemoveBackup() error = %v", err)
		}

		if removed {
			t.Error("expected removed = false for none mode")
		}
	})
}

func TestBackupExists(t *testing.T) {
	t.Parallel()

	t.Run("returns true when backup exists", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "page.wiki")
		backupPath := fsutil.BackupPath(path, fsutil.BackupModeSidecar)

		if err := os.WriteFile(backupPath, []byte("backup"), 0644); err != nil {
			t.Fatalf("setup: %v", err)
		}

		if !fsutil.BackupExists(path, fsutil.BackupModeSidecar) {
			t.Error("expected BackupExists = true")
		}
	})

	t.Run("returns false when backup does not exist", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "page.wiki")

		if fsutil.BackupExists(path, fsutil.BackupModeSidecar) {
			t.Error("expected BackupExists = false")
		}
	})

	t.Run("returns false for none mode", func(t *testing.T) {
		t.Parallel()

		if fsutil.BackupExists("/any/path", fsutil.BackupModeNone) {
			t.Error("expected BackupExists = false for none mode")
		}
	})
}
