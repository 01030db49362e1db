// Package xmlstore reads and writes the scripting settings document as an
// XML file on disk. The store itself only produces and consumes in-memory
// documents; this package owns the persistence lifecycle around it.
//
// Writes are coordinated across processes with an exclusive file lock and
// land atomically via a temporary file and rename.
package xmlstore

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"syscall"

	"scriptctl/internal/scriptsettings"
)

// Load reads the settings document at path. A missing or empty file yields
// an empty document; only unreadable files and broken XML are errors.
func Load(path string) (*scriptsettings.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &scriptsettings.Document{}, nil
		}
		return nil, fmt.Errorf("reading settings file: %w", err)
	}

	if len(raw) == 0 {
		return &scriptsettings.Document{}, nil
	}

	doc := &scriptsettings.Document{}
	if err := xml.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("parsing settings file: %w", err)
	}
	return doc, nil
}

// Save writes doc to path. The write happens under an exclusive flock so
// concurrent sctl invocations serialize, and lands via atomic rename so
// readers never observe a partial file.
func Save(path string, doc *scriptsettings.Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating settings directory: %w", err)
	}

	f, err := os.OpenFile(path+".lock", os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("opening settings lock: %w", err)
	}
	defer f.Close()

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("acquiring settings lock: %w", err)
	}
	defer syscall.Flock(int(f.Fd()), syscall.LOCK_UN)

	raw, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	raw = append([]byte(xml.Header), raw...)
	raw = append(raw, '\n')

	return atomicWrite(path, raw)
}

// atomicWrite writes data to a file atomically via a temporary file and rename.
func atomicWrite(path string, data []byte) error {
	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return fmt.Errorf("generating random suffix: %w", err)
	}
	tmp := path + ".tmp." + hex.EncodeToString(randBytes)

	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp) // best effort cleanup
		return err
	}
	return nil
}
