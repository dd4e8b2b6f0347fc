package importer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	shipmentTypes "logistics-erp/types/shipment"
)

// ParseShipments reads the first sheet of an xlsx workbook and returns one
// ShipmentInput per data row. The header row supplies the field names, which
// must match the wire names of the shipment form (enquiry_no, ff, customer,
// part_no, ...). Rows with no non-blank cell are skipped.
func ParseShipments(r io.Reader) ([]shipmentTypes.ShipmentInput, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	// A header with no data rows is a valid, empty import.
	if len(rows) < 2 {
		return nil, nil
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	var inputs []shipmentTypes.ShipmentInput
	for _, row := range rows[1:] {
		fields := make(map[string]string, len(header))
		empty := true
		for i, h := range header {
			if h == "" || i >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[i])
			fields[h] = v
			if v != "" {
				empty = false
			}
		}
		if empty {
			continue
		}

		in, err := rowToInput(fields)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, in)
	}

	return inputs, nil
}

// rowToInput maps a header-keyed row onto the named input schema. Going
// through JSON keeps the column names and the wire names in one place.
func rowToInput(fields map[string]string) (shipmentTypes.ShipmentInput, error) {
	var in shipmentTypes.ShipmentInput
	raw, err := json.Marshal(fields)
	if err != nil {
		return in, fmt.Errorf("encode row: %w", err)
	}
	if err := json.Unmarshal(raw, &in); err != nil {
		return in, fmt.Errorf("decode row: %w", err)
	}
	return in, nil
}
