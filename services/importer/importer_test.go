package importer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbookBytes(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return buf.Bytes()
}

func TestParseShipments_MapsHeaderedRows(t *testing.T) {
	data := workbookBytes(t, [][]interface{}{
		{"customer", "part_no", "part_desc", "part_qty", "net_wt", "mode"},
		{"Acme GmbH", "P-100", "Widget", "5", "12.5", "Sea"},
		{"Globex", "P-200", "Bracket", "2", "3.25", "Air"},
	})

	inputs, err := ParseShipments(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, inputs, 2)

	assert.Equal(t, "Acme GmbH", inputs[0].Customer)
	assert.Equal(t, "P-100", inputs[0].PartNo)
	assert.Equal(t, "5", inputs[0].PartQty)
	assert.Equal(t, "Air", inputs[1].Mode)
}

func TestParseShipments_SkipsBlankRows(t *testing.T) {
	data := workbookBytes(t, [][]interface{}{
		{"customer", "part_no"},
		{"Acme GmbH", "P-100"},
		{"", ""},
		{"Globex", "P-200"},
	})

	inputs, err := ParseShipments(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, inputs, 2)
	assert.Equal(t, "Globex", inputs[1].Customer)
}

func TestParseShipments_IgnoresUnknownColumns(t *testing.T) {
	data := workbookBytes(t, [][]interface{}{
		{"customer", "warehouse_bay"},
		{"Acme GmbH", "B-17"},
	})

	inputs, err := ParseShipments(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	assert.Equal(t, "Acme GmbH", inputs[0].Customer)
}

func TestParseShipments_HeaderOnlySheetIsEmptyImport(t *testing.T) {
	data := workbookBytes(t, [][]interface{}{
		{"customer", "part_no"},
	})

	inputs, err := ParseShipments(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Empty(t, inputs)
}

func TestParseShipments_RejectsGarbage(t *testing.T) {
	_, err := ParseShipments(bytes.NewReader([]byte("not a workbook")))
	require.Error(t, err)
}
