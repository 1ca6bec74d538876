package core

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// WriteMode selects how Save combines the buffer with an existing file.
type WriteMode int

const (
	WriteOverwrite WriteMode = iota
	WriteAppend               // existing file bytes, then the buffer
	WritePrepend              // the buffer, then existing file bytes
)

// Open reads path into a new document, normalizing CRLF and CR endings.
// On a read failure it still returns a usable empty document carrying the
// path, with the error alongside, so the session can keep editing and
// surface the failure as a status message. A directory is a validation
// error.
func Open(path string) (*Document, error) {
	d := NewDocument()
	d.SetPath(path)
	fi, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return d, nil
		}
		return d, fmt.Errorf("error reading %s: %w", path, err)
	}
	if fi.IsDir() {
		return d, fmt.Errorf("%q is a directory: %w", path, ErrInvalidSaveTarget)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return d, fmt.Errorf("error reading %s: %w", path, err)
	}
	d.setText(string(data))
	return d, nil
}

// OpenReader reads a stream into a new, unnamed document.
func OpenReader(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return NewDocument(), err
	}
	d := NewDocument()
	d.setText(string(data))
	return d, nil
}

// Bytes renders the buffer in its write format: every line followed by the
// format's separator.
func (d *Document) Bytes() []byte {
	sep := d.format.Separator()
	var b strings.Builder
	for _, l := range d.lines {
		b.WriteString(string(l))
		b.WriteString(sep)
	}
	return []byte(b.String())
}

// Save writes the buffer to path through a temporary file renamed into
// place, so a failure never leaves a partial target. Append and prepend
// preserve the existing file bytes before or after the buffer's bytes.
// backup first renames the previous file to path~. A plain overwrite
// adopts path as the document's file and clears the dirty flag.
func (d *Document) Save(path string, mode WriteMode, backup bool) error {
	if strings.TrimSpace(path) == "" {
		return ErrInvalidSaveTarget
	}
	if fi, err := os.Stat(path); err == nil && fi.IsDir() {
		return fmt.Errorf("%q is a directory: %w", path, ErrInvalidSaveTarget)
	}

	t, err := os.CreateTemp(filepath.Dir(path), ".saving-*")
	if err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	tmp := t.Name()
	defer os.Remove(tmp)

	werr := func() error {
		defer t.Close()
		if mode == WriteAppend {
			if prev, err := os.ReadFile(path); err == nil {
				if _, err := t.Write(prev); err != nil {
					return err
				}
			}
		}
		if _, err := t.Write(d.Bytes()); err != nil {
			return err
		}
		if mode == WritePrepend {
			if prev, err := os.ReadFile(path); err == nil {
				if _, err := t.Write(prev); err != nil {
					return err
				}
			}
		}
		return t.Sync()
	}()
	if werr != nil {
		return fmt.Errorf("error writing %s: %w", path, werr)
	}

	if backup {
		if _, err := os.Stat(path); err == nil {
			if err := os.Rename(path, path+"~"); err != nil {
				return fmt.Errorf("error writing %s: %w", path, err)
			}
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	if mode == WriteOverwrite {
		d.path = path
		d.setClean()
	}
	return nil
}
