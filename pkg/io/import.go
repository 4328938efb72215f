package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/flametower/pkg/errors"
	"github.com/matzehuels/flametower/pkg/tree"
)

// Format names an input or output file format.
type Format string

const (
	FormatJSON   Format = "json"
	FormatFolded Format = "folded"
)

var formatFromExt = map[string]Format{
	".json":      FormatJSON,
	".folded":    FormatFolded,
	".collapsed": FormatFolded,
	".txt":       FormatFolded,
}

// DetectFormat returns the format implied by path's extension.
func DetectFormat(path string) (Format, error) {
	if f, ok := formatFromExt[strings.ToLower(filepath.Ext(path))]; ok {
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat,
		"cannot infer format from %q (want .json, .folded, .collapsed or .txt)", path)
}

// ReadJSON decodes a JSON node/edge list from r and builds the tree.
//
// ReadJSON returns an INVALID_FORMAT error if the JSON is malformed and the
// structural errors of [tree.Build] if it does not describe a single tree.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*tree.Node, error) {
	var data graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode")
	}
	return tree.Build(data.Nodes, data.Edges)
}

// Read decodes r using the given format.
func Read(r io.Reader, format Format) (*tree.Node, error) {
	switch format {
	case FormatJSON:
		return ReadJSON(r)
	case FormatFolded:
		return ReadFolded(r)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown input format %q", format)
	}
}

// ImportFile reads the tree stored at path, choosing the reader from the
// file extension. A missing file yields a FILE_NOT_FOUND error.
func ImportFile(path string) (*tree.Node, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	return ImportFileAs(path, format)
}

// ImportFileAs reads the tree stored at path with an explicit format.
func ImportFileAs(path string, format Format) (*tree.Node, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	root, err := Read(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return root, nil
}
