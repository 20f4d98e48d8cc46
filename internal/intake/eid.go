package intake

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const (
	DefaultExportWait = 30 * time.Second

	// settleDelay is the quiet period after the last write before the export
	// is considered complete.
	settleDelay = 200 * time.Millisecond
)

// EIDFile reads the XML file written by the card viewer export. The file is
// removed once read so the next patient never sees stale data.
type EIDFile struct {
	path   string
	export func(ctx context.Context) error
	wait   time.Duration
	logger *slog.Logger
}

type EIDOption func(*EIDFile)

func WithEIDLogger(logger *slog.Logger) EIDOption {
	return func(e *EIDFile) {
		e.logger = logger
	}
}

// WithExportCommand runs name with args to trigger the card export before
// waiting for the file.
func WithExportCommand(name string, args ...string) EIDOption {
	return func(e *EIDFile) {
		if name == "" {
			return
		}
		e.export = func(ctx context.Context) error {
			return exec.CommandContext(ctx, name, args...).Run()
		}
	}
}

// WithExportWait bounds how long ReadIdentity waits for the export.
func WithExportWait(d time.Duration) EIDOption {
	return func(e *EIDFile) {
		if d > 0 {
			e.wait = d
		}
	}
}

func NewEIDFile(path string, opts ...EIDOption) *EIDFile {
	e := &EIDFile{
		path:   path,
		wait:   DefaultExportWait,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Reset creates the export directory and removes a leftover export.
func (e *EIDFile) Reset() error {
	if err := os.MkdirAll(filepath.Dir(e.path), 0o700); err != nil {
		return fmt.Errorf("create eid directory: %w", err)
	}
	if err := os.Remove(e.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove stale eid export: %w", err)
	}
	return nil
}

func (e *EIDFile) ReadIdentity(ctx context.Context) (Identity, error) {
	if e.export != nil {
		e.logger.InfoContext(ctx, "exporting identity card")
		if err := e.export(ctx); err != nil {
			return Identity{}, fmt.Errorf("run eid export: %w", err)
		}
	}
	if err := e.awaitFile(ctx); err != nil {
		return Identity{}, err
	}

	f, err := os.Open(e.path)
	if err != nil {
		return Identity{}, fmt.Errorf("open eid export: %w", err)
	}
	id, err := DecodeEID(f)
	f.Close()
	if rmErr := os.Remove(e.path); rmErr != nil {
		e.logger.WarnContext(ctx, "failed to remove eid export", "path", e.path, "error", rmErr)
	}
	if err != nil {
		return Identity{}, err
	}
	e.logger.InfoContext(ctx, "identity card read", "attributes", len(id.Attributes))
	return id, nil
}

// awaitFile blocks until the export exists, ctx ends or the wait expires.
func (e *EIDFile) awaitFile(ctx context.Context) error {
	if exists(e.path) {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch eid directory: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(filepath.Dir(e.path)); err != nil {
		return fmt.Errorf("watch eid directory: %w", err)
	}
	// The export may have landed before the watch was set.
	if exists(e.path) {
		return nil
	}

	timer := time.NewTimer(e.wait)
	defer timer.Stop()
	var settled <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return fmt.Errorf("%w after %s: %s", ErrExportTimeout, e.wait, e.path)
		case err := <-watcher.Errors:
			return fmt.Errorf("watch eid directory: %w", err)
		case ev := <-watcher.Events:
			if filepath.Clean(ev.Name) != filepath.Clean(e.path) {
				continue
			}
			if ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) {
				e.logger.DebugContext(ctx, "eid export written", "op", ev.Op.String())
				settled = time.After(settleDelay)
			}
		case <-settled:
			return nil
		}
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
