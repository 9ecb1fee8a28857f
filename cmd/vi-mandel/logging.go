package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

const logPrefix = "vi-mandel: "

// setupLogging returns a logger writing to w and, when path is set, appending to that file
// The returned file is nil without a path; the caller closes it
func setupLogging(w io.Writer, path string) (*log.Logger, *os.File, error) {
	if path == "" {
		return log.New(w, logPrefix, log.LstdFlags), nil, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("log file: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("log file: %w", err)
	}
	return log.New(io.MultiWriter(w, f), logPrefix, log.LstdFlags), f, nil
}
