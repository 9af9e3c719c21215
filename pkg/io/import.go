package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/contactsheet/pkg/errors"
)

// ReadJSON decodes a shot list from r.
//
// ReadJSON returns an INVALID_INPUT error if the JSON is malformed, has
// unknown fields, or lists a shot with an empty or repeated path. It does
// not check that the files exist; missing files are handled by the
// bad-image policy at load time. ReadJSON does not close r.
func ReadJSON(r io.Reader) (ShotList, error) {
	var list ShotList
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&list); err != nil {
		return ShotList{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode shot list")
	}

	seen := make(map[string]bool, len(list.Shots))
	for i, s := range list.Shots {
		if s.Path == "" {
			return ShotList{}, errors.New(errors.ErrCodeInvalidInput, "shot %d: path is required", i)
		}
		if seen[s.Path] {
			return ShotList{}, errors.New(errors.ErrCodeInvalidInput, "shot %d: duplicate path %s", i, s.Path)
		}
		seen[s.Path] = true
	}
	return list, nil
}

// ImportJSON reads the shot list file at path.
func ImportJSON(path string) (ShotList, error) {
	f, err := os.Open(path)
	if err != nil {
		return ShotList{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
