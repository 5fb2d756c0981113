package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// BlockStore is the persistent storage capability for the preset block.
//
// WriteBlock blocks the caller for the whole erase+program cycle and must
// leave either the previous block or the new one on disk, never a torn
// write; callers must not assume a background write.
type BlockStore interface {
	ReadBlock() ([]byte, error)
	WriteBlock(block []byte) error
}

// fileStore keeps the block in a single page-sized file. The
// write-temp/fsync/rename sequence stands in for the flash sector
// erase+program: the old page stays intact until the new one is durable.
type fileStore struct {
	path string
}

func newFileStore(path string) *fileStore {
	return &fileStore{path: path}
}

func (f *fileStore) ReadBlock() ([]byte, error) {
	block, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read preset block: %w", err)
	}
	return block, nil
}

func (f *fileStore) WriteBlock(block []byte) error {
	dir := filepath.Dir(f.path)
	tmp, err := os.CreateTemp(dir, ".presets-*")
	if err != nil {
		return fmt.Errorf("create temp block: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(block); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp block: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sync temp block: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp block: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("commit preset block: %w", err)
	}
	return nil
}
