// Package datafile wraps the sink a Cenfis file is written to. It keeps
// track of the stream position so writes can be kept inside EPROM banks.
package datafile

import (
	"fmt"
	"io"
	"os"
)

// DataFile is a positioned writer over any io.Writer.
type DataFile struct {
	writer io.Writer
	file   *os.File // Set when the DataFile owns a locked output file.

	bankSize int
	offset   int
}

// New wraps w. bankSize is the alignment WriteAligned honours.
func New(w io.Writer, bankSize int) *DataFile {
	return &DataFile{
		writer:   w,
		bankSize: bankSize,
	}
}

// Create creates (or truncates) path and takes an exclusive lock on it
// for the lifetime of the DataFile.
func Create(path string, bankSize int) (*DataFile, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("error opening file %q for writing: %w", path, err)
	}

	if err := lock(f); err != nil {
		f.Close()
		return nil, err
	}

	df := New(f, bankSize)
	df.file = f
	return df, nil
}

// Offset returns the current stream position.
func (d *DataFile) Offset() int {
	return d.offset
}

// Name returns the path of the underlying file, if any.
func (d *DataFile) Name() string {
	if d.file == nil {
		return ""
	}
	return d.file.Name()
}

// Write writes data at the current position. DataFile is an io.Writer
// so an encoder can be pointed straight at a locked output file.
func (d *DataFile) Write(data []byte) (int, error) {
	n, err := d.writer.Write(data)
	d.offset += n
	return n, err
}

// WriteAligned is like Write but never lets data straddle a bank
// boundary: when it would, 0xff padding up to the boundary is written
// first. It returns the position data landed at.
func (d *DataFile) WriteAligned(data []byte) (int, error) {
	if pad := d.Padding(len(data)); pad > 0 {
		if _, err := d.Write(fill(0xff, pad)); err != nil {
			return -1, err
		}
	}

	// Store the position the data lands at.
	offset := d.offset

	if _, err := d.Write(data); err != nil {
		return -1, err
	}
	return offset, nil
}

// Padding returns the number of bytes WriteAligned would insert before
// writing length bytes at the current position.
func (d *DataFile) Padding(length int) int {
	return BankPadding(d.offset, length, d.bankSize)
}

// BankPadding returns how many bytes must be skipped at pos so that
// length bytes fit into one bank. Data larger than a bank is only
// aligned to the next boundary.
func BankPadding(pos, length, bankSize int) int {
	if length == 0 || bankSize <= 0 {
		return 0
	}
	if pos/bankSize == (pos+length-1)/bankSize {
		return 0
	}
	return bankSize - pos%bankSize
}

// Sync flushes the file to disk. It is a no-op for plain writers.
func (d *DataFile) Sync() error {
	if d.file == nil {
		return nil
	}
	return d.file.Sync()
}

// Close releases the lock and closes the underlying file.
func (d *DataFile) Close() error {
	if d.file == nil {
		return nil
	}

	if err := unlock(d.file); err != nil {
		d.file.Close()
		return err
	}

	if err := d.file.Close(); err != nil {
		return fmt.Errorf("cannot close fd on file %q: %w", d.file.Name(), err)
	}
	return nil
}

// Discard closes and removes the underlying file, used when a conversion
// fails half way.
func (d *DataFile) Discard() error {
	if d.file == nil {
		return nil
	}
	name := d.file.Name()
	if err := d.Close(); err != nil {
		return err
	}
	if err := os.Remove(name); err != nil {
		return fmt.Errorf("cannot remove file %q: %w", name, err)
	}
	return nil
}

func fill(c byte, n int) []byte {
	p := make([]byte, n)
	for i := range p {
		p[i] = c
	}
	return p
}
