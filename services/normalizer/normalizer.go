package normalizer

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jinzhu/now"

	shipmentModel "logistics-erp/models/shipment"
	shipmentTypes "logistics-erp/types/shipment"
)

// ErrValidation marks a field that failed numeric or date coercion. Handlers
// answer 400 for errors wrapping it.
var ErrValidation = errors.New("validation failed")

// Normalize converts the raw form field map into a canonical shipment record:
// blank strings become NULL, quantity and weights become numbers, the five
// date fields become dates, everything else passes through. The transform is
// pure; lifecycle fields on the returned record are left at their zero value.
//
// A non-numeric quantity or weight fails the operation instead of being
// stored as NaN, and an unparsable date fails instead of storing garbage.
func Normalize(in shipmentTypes.ShipmentInput) (*shipmentModel.Shipment, error) {
	s := &shipmentModel.Shipment{
		EnquiryNo:    optional(in.EnquiryNo),
		FF:           optional(in.FF),
		Customer:     optional(in.Customer),
		InvoiceNo:    optional(in.InvoiceNo),
		InvoiceDate:  optional(in.InvoiceDate),
		PartNo:       optional(in.PartNo),
		PartDesc:     optional(in.PartDesc),
		BoxSize:      optional(in.BoxSize),
		PackageType:  optional(in.PackageType),
		Mode:         optional(in.Mode),
		Incoterm:     optional(in.Incoterm),
		SBNo:         optional(in.SBNo),
		BLNo:         optional(in.BLNo),
		ContainerNo:  optional(in.ContainerNo),
		NotifyEmail:  optional(in.NotifyEmail),
		EmailMessage: optional(in.EmailMessage),
		ManualDesc:   optional(in.ManualDesc),
		LabelURLs:    in.LabelURLs,
	}

	var err error
	if s.PartQty, err = parseQuantity("part_qty", in.PartQty); err != nil {
		return nil, err
	}
	if s.NetWt, err = parseWeight("net_wt", in.NetWt); err != nil {
		return nil, err
	}
	if s.GrossWt, err = parseWeight("gross_wt", in.GrossWt); err != nil {
		return nil, err
	}
	if s.PackagingWt, err = parseWeight("packaging_wt", in.PackagingWt); err != nil {
		return nil, err
	}

	if s.DispatchDate, err = parseDate("dispatch_date", in.DispatchDate); err != nil {
		return nil, err
	}
	if s.SBDate, err = parseDate("sb_date", in.SBDate); err != nil {
		return nil, err
	}
	if s.ETD, err = parseDate("etd", in.ETD); err != nil {
		return nil, err
	}
	if s.ETA, err = parseDate("eta", in.ETA); err != nil {
		return nil, err
	}
	if s.FinalDelivery, err = parseDate("final_delivery", in.FinalDelivery); err != nil {
		return nil, err
	}

	return s, nil
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

func parseQuantity(field, raw string) (*int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: %s: %q is not a number", ErrValidation, field, raw)
	}
	if f != math.Trunc(f) {
		return nil, fmt.Errorf("%w: %s: %q is not a whole number", ErrValidation, field, raw)
	}
	if f < 0 {
		return nil, fmt.Errorf("%w: %s: must not be negative", ErrValidation, field)
	}
	q := int64(f)
	return &q, nil
}

func parseWeight(field, raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: %s: %q is not a number", ErrValidation, field, raw)
	}
	if f < 0 {
		return nil, fmt.Errorf("%w: %s: must not be negative", ErrValidation, field)
	}
	return &f, nil
}

func parseDate(field, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := now.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %q is not a date", ErrValidation, field, raw)
	}
	return &t, nil
}
