package dataset

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/uyouii/automation-impact/common"
	"github.com/uyouii/automation-impact/model"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

type column int

const (
	sectorColumn column = iota
	regionColumn
	impactColumn
	latitudeColumn
	longitudeColumn
)

var headerAliases = map[string]column{
	"sector":         sectorColumn,
	"setor":          sectorColumn,
	"region":         regionColumn,
	"regiao":         regionColumn,
	"impact":         impactColumn,
	"impact_percent": impactColumn,
	"impacto":        impactColumn,
	"latitude":       latitudeColumn,
	"lat":            latitudeColumn,
	"longitude":      longitudeColumn,
	"lon":            longitudeColumn,
	"lng":            longitudeColumn,
	"long":           longitudeColumn,
}

// normalizeHeader folds "  Impacto (%) " into "impacto" and "Região" into "regiao".
func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, h); err == nil {
		h = folded
	}
	h = strings.ReplaceAll(h, "(%)", "")
	h = strings.ReplaceAll(h, "%", "")
	h = strings.TrimSpace(h)
	h = strings.NewReplacer(" ", "_", "-", "_").Replace(h)
	return strings.Trim(h, "_")
}

// columnIndex maps record fields to positions in a row, -1 when absent.
type columnIndex [5]int

func newColumnIndex(header []string) (columnIndex, error) {
	idx := columnIndex{-1, -1, -1, -1, -1}
	for i, h := range header {
		col, ok := headerAliases[normalizeHeader(h)]
		if !ok || idx[col] >= 0 {
			continue
		}
		idx[col] = i
	}
	if idx[sectorColumn] < 0 {
		return idx, fmt.Errorf("%w: sector", common.ErrorMissingColumn)
	}
	if idx[impactColumn] < 0 {
		return idx, fmt.Errorf("%w: impact", common.ErrorMissingColumn)
	}
	return idx, nil
}

func (idx columnIndex) field(row []string, col column) string {
	i := idx[col]
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseRow returns false when the impact cannot be coerced to a finite
// percentage. Coordinates are kept only when both are valid.
func (idx columnIndex) parseRow(row []string) (model.Record, bool) {
	impact, ok := parseImpact(idx.field(row, impactColumn))
	if !ok {
		return model.Record{}, false
	}
	rec := model.Record{
		Sector: idx.field(row, sectorColumn),
		Region: idx.field(row, regionColumn),
		Impact: impact,
	}

	lat, latOk := parseCoordinate(idx.field(row, latitudeColumn), 90)
	lon, lonOk := parseCoordinate(idx.field(row, longitudeColumn), 180)
	if latOk && lonOk {
		rec.Latitude, rec.Longitude = &lat, &lon
	}
	return rec, true
}

// parseImpact accepts "70", "70.5", "70%", "70,5" and "70,5 %".
func parseImpact(s string) (float64, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	return parseNumber(s)
}

func parseCoordinate(s string, limit float64) (float64, bool) {
	v, ok := parseNumber(s)
	if !ok || math.Abs(v) > limit {
		return 0, false
	}
	return v, true
}

func parseNumber(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
