package api

import (
	"encoding/json"

	"github.com/glare-project/glare/pkg/errclass"
	"github.com/glare-project/glare/pkg/logging"
	"github.com/glare-project/glare/pkg/model"
)

// The backend's listing shape varies with the worker and engine version:
// a bare array of records, an object wrapping the array under some key, an
// array of group objects each nesting a "snapshots" array, or an array of
// arrays. Extraction tries each shape in order and returns a typed result
// or an unrecognized-shape error. Per-element failures are logged once per
// distinct shape, not once per record.

// ParseSnapshotListing parses a backend-native snapshot listing.
func ParseSnapshotListing(data []byte) ([]model.SnapshotRecord, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err == nil {
		return snapshotsFromElements(elements), nil
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, errclass.ErrParse.WithMessagef("unrecognized snapshot listing shape: %s", shapeOf(data))
	}

	if nested, ok := wrapper["snapshots"]; ok {
		return ParseSnapshotListing(nested)
	}
	if len(wrapper) == 1 {
		for _, nested := range wrapper {
			if err := json.Unmarshal(nested, &elements); err == nil {
				return snapshotsFromElements(elements), nil
			}
		}
	}

	return nil, errclass.ErrParse.WithMessagef("unrecognized snapshot listing shape: %s", shapeOf(data))
}

func snapshotsFromElements(elements []json.RawMessage) []model.SnapshotRecord {
	var out []model.SnapshotRecord
	for _, element := range elements {
		// A record carries an id; anything else is a group wrapper or an
		// inner array.
		var record model.SnapshotRecord
		if err := json.Unmarshal(element, &record); err == nil && record.ID != "" {
			out = append(out, record)
			continue
		}

		var group struct {
			Snapshots []model.SnapshotRecord `json:"snapshots"`
		}
		if err := json.Unmarshal(element, &group); err == nil && group.Snapshots != nil {
			out = append(out, group.Snapshots...)
			continue
		}

		var inner []model.SnapshotRecord
		if err := json.Unmarshal(element, &inner); err == nil {
			out = append(out, inner...)
			continue
		}

		shape := shapeOf(element)
		logging.WarnOnce("snapshot-element:"+shape, "skipping unrecognized snapshot listing element",
			map[string]any{"shape": shape})
	}
	return out
}

// ParseFileListing parses a backend-native snapshot file listing into flat
// FileEntry facts. Entries without a path are skipped.
func ParseFileListing(data []byte) ([]model.FileEntry, error) {
	var elements []json.RawMessage
	if err := json.Unmarshal(data, &elements); err != nil {
		var wrapper map[string]json.RawMessage
		if err := json.Unmarshal(data, &wrapper); err != nil {
			return nil, errclass.ErrParse.WithMessagef("unrecognized file listing shape: %s", shapeOf(data))
		}
		for _, key := range []string{"entries", "files", "items", "nodes"} {
			if nested, ok := wrapper[key]; ok {
				return ParseFileListing(nested)
			}
		}
		if len(wrapper) == 1 {
			for _, nested := range wrapper {
				return ParseFileListing(nested)
			}
		}
		return nil, errclass.ErrParse.WithMessagef("unrecognized file listing shape: %s", shapeOf(data))
	}

	var out []model.FileEntry
	for _, element := range elements {
		var raw struct {
			Path string `json:"path"`
			Type string `json:"type"`
			Size int64  `json:"size"`
		}
		if err := json.Unmarshal(element, &raw); err != nil || raw.Path == "" {
			shape := shapeOf(element)
			logging.WarnOnce("file-element:"+shape, "skipping unrecognized file listing element",
				map[string]any{"shape": shape})
			continue
		}
		out = append(out, model.FileEntry{
			Path: raw.Path,
			Kind: normalizeFileKind(raw.Type),
			Size: raw.Size,
		})
	}
	return out, nil
}

func normalizeFileKind(kind string) model.FileKind {
	switch kind {
	case "dir", "directory", "tree":
		return model.FileKindDir
	default:
		return model.FileKindFile
	}
}

// shapeOf names the top-level JSON shape of data for diagnostics.
func shapeOf(data []byte) string {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			return "array"
		case '{':
			return "object"
		case '"':
			return "string"
		case 't', 'f':
			return "bool"
		case 'n':
			return "null"
		default:
			return "number"
		}
	}
	return "empty"
}
