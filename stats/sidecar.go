package stats

import (
	"encoding/json"
	"io"

	"github.com/golang/snappy"
	"github.com/pkg/errors"
)

// WriteSidecar serializes snap as JSON, Snappy-compresses it, and writes it
// to w, producing the stats sidecar.
func WriteSidecar(w io.Writer, snap Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return errors.Wrap(err, "stats: marshaling snapshot")
	}
	compressed := snappy.Encode(nil, raw)
	if _, err := w.Write(compressed); err != nil {
		return errors.Wrap(err, "stats: writing sidecar")
	}
	return nil
}

// ReadSidecar is the inverse of WriteSidecar, used by tests and tooling
// that need to inspect a prior run's stats.
func ReadSidecar(r io.Reader) (Snapshot, error) {
	compressed, err := io.ReadAll(r)
	if err != nil {
		return Snapshot{}, errors.Wrap(err, "stats: reading sidecar")
	}
	raw, err := snappy.Decode(nil, compressed)
	if err != nil {
		return Snapshot{}, errors.Wrap(err, "stats: decompressing sidecar")
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return Snapshot{}, errors.Wrap(err, "stats: unmarshaling sidecar")
	}
	return snap, nil
}
