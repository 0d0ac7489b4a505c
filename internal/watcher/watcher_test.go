package watcher_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"modscout/internal/logging"
	"modscout/internal/watcher"
)

func TestRunReportsNewTopLevelFolder(t *testing.T) {
	root := t.TempDir()
	w := watcher.New(root, 50*time.Millisecond, logging.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	folders := make(chan string, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(_ context.Context, folder string) {
			folders <- folder
		})
	}()

	// Give the watcher a moment to register before creating the folder.
	time.Sleep(100 * time.Millisecond)
	created := filepath.Join(root, "New Ayaka Mod")
	if err := os.Mkdir(created, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	select {
	case folder := <-folders:
		if folder != created {
			t.Fatalf("unexpected folder: %q", folder)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for folder event")
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for Run to stop")
	}
}

func TestRunIgnoresPlainFiles(t *testing.T) {
	root := t.TempDir()
	w := watcher.New(root, 50*time.Millisecond, logging.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	folders := make(chan string, 4)
	go func() {
		_ = w.Run(ctx, func(_ context.Context, folder string) {
			folders <- folder
		})
	}()

	time.Sleep(100 * time.Millisecond)
	if err := os.WriteFile(filepath.Join(root, "readme.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	select {
	case folder := <-folders:
		t.Fatalf("unexpected event for plain file: %q", folder)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestRunRejectsMissingRoot(t *testing.T) {
	w := watcher.New(filepath.Join(t.TempDir(), "absent"), 0, logging.NewNop())
	if err := w.Run(context.Background(), func(context.Context, string) {}); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestRunRequiresHandler(t *testing.T) {
	w := watcher.New(t.TempDir(), 0, logging.NewNop())
	if err := w.Run(context.Background(), nil); err == nil {
		t.Fatal("expected error for nil handler")
	}
}
