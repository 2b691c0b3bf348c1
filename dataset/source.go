package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/uyouii/automation-impact/common"
	"github.com/uyouii/automation-impact/model"
)

type Source interface {
	Name() string
	// Fingerprint changes whenever the underlying data changes.
	Fingerprint(ctx context.Context) (string, error)
	Load(ctx context.Context) (*Snapshot, error)
}

// FileSource reads a .csv or .xlsx file.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

func (s *FileSource) Name() string {
	return "file:" + s.Path
}

func (s *FileSource) Fingerprint(ctx context.Context) (string, error) {
	info, err := os.Stat(s.Path)
	if err != nil {
		return "", fmt.Errorf("stat dataset: %w", err)
	}
	return fmt.Sprintf("%s:%d:%d", s.Path, info.Size(), info.ModTime().UnixNano()), nil
}

func (s *FileSource) Load(ctx context.Context) (*Snapshot, error) {
	fingerprint, err := s.Fingerprint(ctx)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	var res *ParseResult
	switch ext := strings.ToLower(filepath.Ext(s.Path)); ext {
	case ".csv", ".txt":
		res, err = ParseCSV(f)
	case ".xlsx", ".xlsm":
		res, err = ParseXLSX(f)
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrorUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.Path, err)
	}
	return newSnapshot(s.Name(), fingerprint, res), nil
}

// BuiltinSource serves the five sector sample shown when no dataset is
// configured.
type BuiltinSource struct{}

func (BuiltinSource) Name() string {
	return "builtin"
}

func (BuiltinSource) Fingerprint(ctx context.Context) (string, error) {
	return "builtin:v1", nil
}

func (s BuiltinSource) Load(ctx context.Context) (*Snapshot, error) {
	fingerprint, _ := s.Fingerprint(ctx)
	return newSnapshot(s.Name(), fingerprint, &ParseResult{Records: SampleRecords()}), nil
}

// SampleRecords returns a fresh copy of the sample dataset. Global records
// have no location.
func SampleRecords() []model.Record {
	at := func(lat, lon float64) (*float64, *float64) { return &lat, &lon }

	naLat, naLon := at(40.0, -100.0)
	euLat, euLon := at(50.0, 10.0)
	laLat, laLon := at(-15.0, -60.0)

	return []model.Record{
		{Sector: "Technology", Region: "Global", Impact: 70},
		{Sector: "Health", Region: "Global", Impact: 50},
		{Sector: "Industry", Region: "North America", Impact: 40, Latitude: naLat, Longitude: naLon},
		{Sector: "Education", Region: "Europe", Impact: 35, Latitude: euLat, Longitude: euLon},
		{Sector: "Agriculture", Region: "Latin America", Impact: 20, Latitude: laLat, Longitude: laLon},
	}
}
