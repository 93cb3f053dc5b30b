package ayna

import (
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	snapshotListFile    = "bus-list.json"
	snapshotDetailsFile = "bus-details.json"
)

//go:embed snapshot/bus-list.json snapshot/bus-details.json
var snapshotFS embed.FS

// SnapshotStore reads the bundled static copy of the API data. With an empty
// dir it serves the embedded files; a non-empty dir overrides them from disk.
type SnapshotStore struct {
	dir string
}

func NewSnapshotStore(dir string) *SnapshotStore {
	return &SnapshotStore{dir: dir}
}

// BusList reads the snapshot bus list.
func (s *SnapshotStore) BusList() ([]BusSummary, error) {
	data, err := s.read(snapshotListFile)
	if err != nil {
		return nil, err
	}
	var raw []busSummaryJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", snapshotListFile, err)
	}
	buses := make([]BusSummary, 0, len(raw))
	for _, r := range raw {
		buses = append(buses, r.summary())
	}
	return buses, nil
}

// BusDetails reads the single snapshot bus-detail record.
func (s *SnapshotStore) BusDetails() (*BusDetails, error) {
	data, err := s.read(snapshotDetailsFile)
	if err != nil {
		return nil, err
	}
	var details BusDetails
	if err := json.Unmarshal(data, &details); err != nil {
		return nil, fmt.Errorf("snapshot %s: %w", snapshotDetailsFile, err)
	}
	return &details, nil
}

func (s *SnapshotStore) read(name string) ([]byte, error) {
	if s.dir != "" {
		data, err := os.ReadFile(filepath.Join(s.dir, name))
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: snapshot file %s", ErrNotFound, name)
		}
		return data, err
	}
	return snapshotFS.ReadFile("snapshot/" + name)
}
