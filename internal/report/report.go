// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package report serializes scheduler logs and admission verdicts as YAML.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Dump writes v to w as a YAML document.
func Dump(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// FileName returns the name of a log file for algorithm created at t.
func FileName(t time.Time, algorithm string) string {
	return fmt.Sprintf("%s-%s-log.yaml", t.UTC().Format("2006-01-02-15-04-05"), algorithm)
}

// DumpFile writes v as YAML to a new timestamped file in dir, creating dir
// if needed, and returns the file's path.
func DumpFile(dir, algorithm string, v any) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, FileName(time.Now(), algorithm))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err := Dump(f, v); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return path, nil
}
