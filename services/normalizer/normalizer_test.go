package normalizer

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shipmentModel "logistics-erp/models/shipment"
	shipmentTypes "logistics-erp/types/shipment"
)

func TestNormalize_BlankBecomesNull(t *testing.T) {
	in := shipmentTypes.ShipmentInput{
		Customer: "",
		PartNo:   "",
		PartQty:  "",
		NetWt:    "",
		ETD:      "",
	}

	s, err := Normalize(in)
	require.NoError(t, err)

	assert.Nil(t, s.Customer)
	assert.Nil(t, s.PartNo)
	assert.Nil(t, s.PartQty)
	assert.Nil(t, s.NetWt)
	assert.Nil(t, s.ETD)
}

func TestNormalize_NumericCoercion(t *testing.T) {
	in := shipmentTypes.ShipmentInput{
		PartQty:     "12",
		NetWt:       "10.5",
		GrossWt:     "11.25",
		PackagingWt: "0.75",
	}

	s, err := Normalize(in)
	require.NoError(t, err)

	require.NotNil(t, s.PartQty)
	assert.Equal(t, int64(12), *s.PartQty)
	require.NotNil(t, s.NetWt)
	assert.Equal(t, 10.5, *s.NetWt)
	require.NotNil(t, s.GrossWt)
	assert.Equal(t, 11.25, *s.GrossWt)
	require.NotNil(t, s.PackagingWt)
	assert.Equal(t, 0.75, *s.PackagingWt)
}

func TestNormalize_RejectsNonNumeric(t *testing.T) {
	cases := []shipmentTypes.ShipmentInput{
		{PartQty: "twelve"},
		{NetWt: "heavy"},
		{GrossWt: "NaN"},
		{PackagingWt: "-1"},
		{PartQty: "-3"},
		{PartQty: "2.5"},
	}

	for _, in := range cases {
		_, err := Normalize(in)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestNormalize_DateCoercion(t *testing.T) {
	in := shipmentTypes.ShipmentInput{
		DispatchDate:  "2025-03-01",
		SBDate:        "2025-03-02",
		ETD:           "2025-03-05",
		ETA:           "2025-04-01",
		FinalDelivery: "2025-04-10",
	}

	s, err := Normalize(in)
	require.NoError(t, err)

	require.NotNil(t, s.DispatchDate)
	assert.Equal(t, 2025, s.DispatchDate.Year())
	assert.Equal(t, time.March, s.DispatchDate.Month())
	require.NotNil(t, s.FinalDelivery)
	assert.Equal(t, 10, s.FinalDelivery.Day())
}

func TestNormalize_RejectsUnparsableDate(t *testing.T) {
	_, err := Normalize(shipmentTypes.ShipmentInput{ETA: "sometime soon"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "eta")
}

func TestNormalize_PassThrough(t *testing.T) {
	in := shipmentTypes.ShipmentInput{
		EnquiryNo: "QMRel-2025-0042",
		FF:        "Oceanic Freight",
		Customer:  "Acme GmbH",
		Mode:      "Sea",
		Incoterm:  "FOB",
		LabelURLs: []string{"/uploads/a.pdf", "/uploads/b.pdf"},
	}

	s, err := Normalize(in)
	require.NoError(t, err)

	require.NotNil(t, s.EnquiryNo)
	assert.Equal(t, "QMRel-2025-0042", *s.EnquiryNo)
	require.NotNil(t, s.FF)
	assert.Equal(t, "Oceanic Freight", *s.FF)
	require.NotNil(t, s.Mode)
	assert.Equal(t, "Sea", *s.Mode)
	assert.Equal(t, []string{"/uploads/a.pdf", "/uploads/b.pdf"}, s.LabelURLs)
}

func TestNormalize_Idempotent(t *testing.T) {
	in := shipmentTypes.ShipmentInput{
		EnquiryNo:    "QMRel-2025-0001",
		Customer:     "Acme GmbH",
		PartNo:       "P-100",
		PartDesc:     "Widget",
		PartQty:      "5",
		NetWt:        "12.5",
		GrossWt:      "13",
		DispatchDate: "2025-03-01",
		ETA:          "2025-04-01",
		Mode:         "Air",
	}

	first, err := Normalize(in)
	require.NoError(t, err)

	second, err := Normalize(render(first))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// render turns a normalized record back into form-shaped strings, the way a
// client would echo it on the next submit.
func render(s *shipmentModel.Shipment) shipmentTypes.ShipmentInput {
	return shipmentTypes.ShipmentInput{
		EnquiryNo:     str(s.EnquiryNo),
		FF:            str(s.FF),
		Customer:      str(s.Customer),
		InvoiceNo:     str(s.InvoiceNo),
		InvoiceDate:   str(s.InvoiceDate),
		PartNo:        str(s.PartNo),
		PartDesc:      str(s.PartDesc),
		PartQty:       intStr(s.PartQty),
		NetWt:         floatStr(s.NetWt),
		GrossWt:       floatStr(s.GrossWt),
		PackagingWt:   floatStr(s.PackagingWt),
		BoxSize:       str(s.BoxSize),
		PackageType:   str(s.PackageType),
		Mode:          str(s.Mode),
		DispatchDate:  dateStr(s.DispatchDate),
		Incoterm:      str(s.Incoterm),
		SBNo:          str(s.SBNo),
		SBDate:        dateStr(s.SBDate),
		ETD:           dateStr(s.ETD),
		ETA:           dateStr(s.ETA),
		BLNo:          str(s.BLNo),
		ContainerNo:   str(s.ContainerNo),
		FinalDelivery: dateStr(s.FinalDelivery),
		NotifyEmail:   str(s.NotifyEmail),
		EmailMessage:  str(s.EmailMessage),
		ManualDesc:    str(s.ManualDesc),
		LabelURLs:     s.LabelURLs,
	}
}

func str(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func intStr(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

func floatStr(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func dateStr(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.Format("2006-01-02 15:04:05")
}
