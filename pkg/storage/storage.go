// Package storage writes and claims small files on local disk.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

type Storage struct{}

// SaveFile writes content to filePath atomically, creating parent directories.
func (s *Storage) SaveFile(filePath string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}

	tmp := filePath + ".tmp-" + strconv.Itoa(os.Getpid())
	if err := os.WriteFile(tmp, content, 0600); err != nil {
		return fmt.Errorf("error saving file: %w", err)
	}
	if err := os.Rename(tmp, filePath); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("error saving file: %w", err)
	}
	return nil
}

func (s *Storage) HasFile(fn string) bool {
	_, err := os.Stat(fn)
	return err == nil
}

// ClaimFile reads filePath and removes it. The file is renamed first, so
// when several processes race only one of them gets the content.
// ok is false when the file does not exist.
func (s *Storage) ClaimFile(filePath string) (content []byte, ok bool, err error) {
	claimed := filePath + ".claimed-" + strconv.Itoa(os.Getpid())
	if err := os.Rename(filePath, claimed); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("error claiming file: %w", err)
	}
	defer os.Remove(claimed)

	data, err := os.ReadFile(claimed)
	if err != nil {
		return nil, false, fmt.Errorf("error reading claimed file: %w", err)
	}
	return data, true, nil
}
