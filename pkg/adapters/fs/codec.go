package fs

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/notes/pkg/core"
)

// Codec encodes the persisted snapshot in one file format.
type Codec interface {
	Encode(snap core.Snapshot) ([]byte, error)
	Decode(data []byte) (core.Snapshot, error)
	Name() string
}

// JSONCodec stores the snapshot as indented JSON.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Encode(snap core.Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func (JSONCodec) Decode(data []byte) (core.Snapshot, error) {
	var snap core.Snapshot
	err := json.Unmarshal(data, &snap)
	return snap, err
}

// YAMLCodec stores the snapshot as YAML.
type YAMLCodec struct{}

func (YAMLCodec) Name() string { return "yaml" }

func (YAMLCodec) Encode(snap core.Snapshot) ([]byte, error) {
	return yaml.Marshal(snap)
}

func (YAMLCodec) Decode(data []byte) (core.Snapshot, error) {
	var snap core.Snapshot
	err := yaml.Unmarshal(data, &snap)
	return snap, err
}

// CodecFor picks the codec matching the file extension (.json, .yaml, .yml).
func CodecFor(path string) (Codec, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", "":
		return JSONCodec{}, nil
	case ".yaml", ".yml":
		return YAMLCodec{}, nil
	default:
		return nil, fmt.Errorf("unsupported state file extension: %s", filepath.Ext(path))
	}
}
