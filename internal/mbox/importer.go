package mbox

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/sisifus/jobflow/internal/model"
)

// Stats summarizes one import pass.
type Stats struct {
	MessageCount int
	Parsed       int
	Skipped      int
}

// Importer reads mbox files into Email records.
type Importer struct {
	logger *slog.Logger
}

// NewImporter creates an Importer.
func NewImporter(logger *slog.Logger) *Importer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Importer{logger: logger}
}

// ImportFile parses every message in an mbox file. Messages that fail
// to parse are skipped and counted, not fatal.
func (i *Importer) ImportFile(ctx context.Context, path string) ([]model.Email, Stats, error) {
	var stats Stats

	f, err := os.Open(path)
	if err != nil {
		return nil, stats, fmt.Errorf("failed to open mbox file: %w", err)
	}
	defer func() { _ = f.Close() }()

	reader := NewReader(f)
	var emails []model.Email
	for {
		select {
		case <-ctx.Done():
			return nil, stats, ctx.Err()
		default:
		}

		raw, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, stats, err
		}
		stats.MessageCount++

		email, parseErr := ParseMessage(raw)
		if parseErr != nil {
			stats.Skipped++
			i.logger.Debug("skipping unparseable message",
				"file", filepath.Base(path),
				"message", stats.MessageCount,
				"error", parseErr)
			continue
		}
		stats.Parsed++
		emails = append(emails, email)
	}

	i.logger.Info("imported mbox file",
		"file", filepath.Base(path),
		"messages", stats.MessageCount,
		"parsed", stats.Parsed,
		"skipped", stats.Skipped)

	return emails, stats, nil
}

// FindMboxFiles recursively finds .mbox files under dir, mirroring the
// nested folder layout of Takeout archives. Account-settings folders
// are skipped whole; the check is per directory name, so archives
// under paths like /Users or /home/user are never filtered out.
func FindMboxFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && isSettingsFolder(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".mbox") {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	return files, nil
}

// isSettingsFolder reports whether a directory holds exported account
// settings rather than mail. Takeout localizes the folder name, so the
// English and Portuguese variants are both recognized.
func isSettingsFolder(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "settings") || strings.Contains(lower, "configurações")
}
