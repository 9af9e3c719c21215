package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"

	"github.com/matzehuels/contactsheet/pkg/fsutil"
	"github.com/matzehuels/contactsheet/pkg/renders"
)

// ShotList is the serialized result of a scan.
type ShotList struct {
	Sequence string              `json:"sequence,omitempty"`
	Shots    []renders.ShotImage `json:"shots"`
}

// WriteJSON encodes list as indented JSON and writes it to w.
func WriteJSON(list ShotList, w io.Writer) error {
	if list.Shots == nil {
		list.Shots = []renders.ShotImage{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(list); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes list to a JSON file at path, replacing it atomically.
func ExportJSON(list ShotList, path string) error {
	var buf bytes.Buffer
	if err := WriteJSON(list, &buf); err != nil {
		return err
	}
	if err := fsutil.WriteFileAtomic(filepath.Dir(path), filepath.Base(path), buf.Bytes()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
