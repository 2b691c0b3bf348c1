package dataset

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uyouii/automation-impact/model"
)

// Snapshot is one immutable load of a Source. Records are never modified
// after construction and may be shared between goroutines.
type Snapshot struct {
	ID          string
	Source      string
	Fingerprint string
	LoadedAt    time.Time
	Records     []model.Record
	Dropped     int
}

func newSnapshot(source, fingerprint string, res *ParseResult) *Snapshot {
	return &Snapshot{
		ID:          uuid.NewString(),
		Source:      source,
		Fingerprint: fingerprint,
		LoadedAt:    time.Now(),
		Records:     res.Records,
		Dropped:     res.Dropped,
	}
}

func (s *Snapshot) Info() model.SnapshotInfo {
	return model.SnapshotInfo{
		ID:          s.ID,
		Source:      s.Source,
		Fingerprint: s.Fingerprint,
		LoadedAt:    s.LoadedAt,
		RecordCount: len(s.Records),
		Dropped:     s.Dropped,
	}
}

// Sectors returns the distinct sectors sorted by name.
func (s *Snapshot) Sectors() []string {
	return distinct(s.Records, func(r *model.Record) string { return r.Sector })
}

func (s *Snapshot) Regions() []string {
	return distinct(s.Records, func(r *model.Record) string { return r.Region })
}

func (s *Snapshot) Impacts() []float64 {
	res := make([]float64, len(s.Records))
	for i := range s.Records {
		res[i] = s.Records[i].Impact
	}
	return res
}

// HasSector reports whether sector names records of the snapshot. Sectors
// are compared exactly, as in Sectors and Partition.
func (s *Snapshot) HasSector(sector string) bool {
	for i := range s.Records {
		if s.Records[i].Sector == sector {
			return true
		}
	}
	return false
}

// LookupSector resolves user input to a sector of the snapshot. An exact
// match wins, otherwise a case insensitive match is accepted when only one
// sector folds to name.
func (s *Snapshot) LookupSector(name string) (string, bool) {
	if s.HasSector(name) {
		return name, true
	}
	found := ""
	for _, sector := range s.Sectors() {
		if !strings.EqualFold(sector, name) {
			continue
		}
		if found != "" {
			return "", false
		}
		found = sector
	}
	return found, found != ""
}

// Partition splits impacts into the records of sector and the rest.
func (s *Snapshot) Partition(sector string) (in, out []float64) {
	in, out = []float64{}, []float64{}
	for i := range s.Records {
		if s.Records[i].Sector == sector {
			in = append(in, s.Records[i].Impact)
		} else {
			out = append(out, s.Records[i].Impact)
		}
	}
	return in, out
}

// Column returns one categorical field per record alongside the impacts.
func (s *Snapshot) Column(field func(r *model.Record) string) ([]string, []float64) {
	keys := make([]string, len(s.Records))
	for i := range s.Records {
		keys[i] = field(&s.Records[i])
	}
	return keys, s.Impacts()
}

func (s *Snapshot) GeoPoints() []model.GeoPoint {
	res := []model.GeoPoint{}
	for i := range s.Records {
		r := &s.Records[i]
		if !r.HasLocation() {
			continue
		}
		res = append(res, model.GeoPoint{
			Sector:    r.Sector,
			Region:    r.Region,
			Impact:    r.Impact,
			Latitude:  *r.Latitude,
			Longitude: *r.Longitude,
		})
	}
	return res
}

func SectorOf(r *model.Record) string {
	return r.Sector
}

func RegionOf(r *model.Record) string {
	return r.Region
}

func distinct(records []model.Record, field func(r *model.Record) string) []string {
	seen := map[string]struct{}{}
	res := []string{}
	for i := range records {
		v := field(&records[i])
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		res = append(res, v)
	}
	sort.Strings(res)
	return res
}
