package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uyouii/automation-impact/common"
	"github.com/xuri/excelize/v2"
)

func TestNormalizeHeader(t *testing.T) {
	cases := map[string]string{
		"Impacto (%)":    "impacto",
		"  Região ":      "regiao",
		"\ufeffSetor":    "setor",
		"impact_percent": "impact_percent",
		"Impact %":       "impact",
		"Impact-Percent": "impact_percent",
		"LATITUDE":       "latitude",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeHeader(in), in)
	}
}

func TestParseCSVPortuguese(t *testing.T) {
	data := "Setor;Impacto (%);Região;Latitude;Longitude\n" +
		" Tecnologia ; 70% ;Global;;\n" +
		"Saúde;50,5;Global;;\n" +
		"Indústria;abc;América do Norte;40;-100\n" +
		"Educação;35;Europa;50;10\n"

	res, err := ParseCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, res.Records, 3)
	assert.Equal(t, 1, res.Dropped)

	assert.Equal(t, "Tecnologia", res.Records[0].Sector)
	assert.Equal(t, "Global", res.Records[0].Region)
	assert.Equal(t, 70.0, res.Records[0].Impact)
	assert.False(t, res.Records[0].HasLocation())

	assert.Equal(t, "Saúde", res.Records[1].Sector)
	assert.Equal(t, 50.5, res.Records[1].Impact)

	edu := res.Records[2]
	assert.Equal(t, "Educação", edu.Sector)
	require.True(t, edu.HasLocation())
	assert.Equal(t, 50.0, *edu.Latitude)
	assert.Equal(t, 10.0, *edu.Longitude)
}

func TestParseCSVEnglish(t *testing.T) {
	data := "sector,region,impact_percent,lat,lon\n" +
		"Technology,Global,70,,\n" +
		",,,,\n" +
		"Health,Global,NaN,,\n" +
		"Industry,North America,40,95,-100\n" +
		"Education,Europe,\"35.5\",50\n"

	res, err := ParseCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, res.Records, 3)
	assert.Equal(t, 1, res.Dropped)

	assert.Equal(t, "Industry", res.Records[1].Sector)
	// latitude out of range drops both coordinates
	assert.False(t, res.Records[1].HasLocation())
	// missing longitude
	assert.Equal(t, 35.5, res.Records[2].Impact)
	assert.False(t, res.Records[2].HasLocation())
}

func TestParseCSVRaggedRows(t *testing.T) {
	res, err := ParseCSV(strings.NewReader("sector,impact\nA\nB,3\n"))
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "B", res.Records[0].Sector)
	assert.Equal(t, "", res.Records[0].Region)
	assert.Equal(t, 1, res.Dropped)
}

func TestParseCSVErrors(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, common.ErrorMissingColumn)

	_, err = ParseCSV(strings.NewReader("region,impact\nGlobal,5\n"))
	assert.ErrorIs(t, err, common.ErrorMissingColumn)

	_, err = ParseCSV(strings.NewReader("sector,region\nA,Global\n"))
	assert.ErrorIs(t, err, common.ErrorMissingColumn)
}

func TestParseXLSX(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	rows := [][]interface{}{
		{"Sector", "Region", "Impact (%)", "Latitude", "Longitude"},
		{"Technology", "Global", 70},
		{"Industry", "North America", 40.5, 40, -100},
		{"Education", "Europe", "n/a"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	res, err := ParseXLSX(buf)
	require.NoError(t, err)
	require.Len(t, res.Records, 2)
	assert.Equal(t, 1, res.Dropped)

	assert.Equal(t, "Technology", res.Records[0].Sector)
	assert.Equal(t, 70.0, res.Records[0].Impact)
	assert.Equal(t, 40.5, res.Records[1].Impact)
	require.True(t, res.Records[1].HasLocation())
	assert.Equal(t, -100.0, *res.Records[1].Longitude)
}

func TestParseXLSXInvalid(t *testing.T) {
	_, err := ParseXLSX(strings.NewReader("not a workbook"))
	assert.Error(t, err)
}
