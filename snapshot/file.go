package snapshot

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hupe1980/segvec"
)

// Save writes a snapshot of v to path atomically: the bytes go to a
// temporary file in the same directory, which is fsynced and renamed over
// the destination. A crash never leaves a half-written snapshot behind.
func Save(path string, v *segvec.Vector, optFns ...func(*Options)) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	defer func() {
		_ = os.Remove(tmp.Name())
	}()

	bw := bufio.NewWriter(tmp)
	if err := Write(bw, v, optFns...); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("flush snapshot: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename snapshot into place: %w", err)
	}
	return nil
}

// Load reads a snapshot from path.
func Load(path string) (*segvec.Vector, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path is caller-controlled by design
	if err != nil {
		return nil, fmt.Errorf("open snapshot: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	return Read(bufio.NewReader(f))
}
