package shipment

import (
	"fmt"

	shipmentModel "logistics-erp/models/shipment"
)

// ShipmentInput is the explicit schema for the raw field map the multi-step
// form (or one spreadsheet row) submits. Every scalar arrives as a string;
// coercion to numbers and dates happens in the normalizer. Unknown JSON
// fields are dropped by decoding into this named struct.
type ShipmentInput struct {
	EnquiryNo string `json:"enquiry_no"`
	FF        string `json:"ff"`
	Customer  string `json:"customer"`

	InvoiceNo   string `json:"invoice_no"`
	InvoiceDate string `json:"invoice_date"`

	PartNo   string `json:"part_no"`
	PartDesc string `json:"part_desc"`

	PartQty     string `json:"part_qty"`
	NetWt       string `json:"net_wt"`
	GrossWt     string `json:"gross_wt"`
	PackagingWt string `json:"packaging_wt"`

	BoxSize     string `json:"box_size"`
	PackageType string `json:"package_type"`

	Mode string `json:"mode"`

	DispatchDate string `json:"dispatch_date"`
	Incoterm     string `json:"incoterm"`

	SBNo   string `json:"sb_no"`
	SBDate string `json:"sb_date"`

	ETD string `json:"etd"`
	ETA string `json:"eta"`

	BLNo        string `json:"bl_no"`
	ContainerNo string `json:"container_no"`

	FinalDelivery string `json:"final_delivery"`

	NotifyEmail  string `json:"notify_email"`
	EmailMessage string `json:"email_message"`

	ManualDesc string `json:"manual_desc"`

	LabelURLs []string `json:"label_urls"`
}

// Validate checks the enum-typed fields. Blank values are allowed everywhere;
// the normalizer handles blank-to-null and numeric/date coercion.
func (in ShipmentInput) Validate() error {
	if in.Mode != "" && !shipmentModel.IsValidMode(in.Mode) {
		return fmt.Errorf("mode must be one of %v", shipmentModel.Modes)
	}
	if in.Incoterm != "" && !shipmentModel.IsValidIncoterm(in.Incoterm) {
		return fmt.Errorf("incoterm must be one of %v", shipmentModel.Incoterms)
	}
	return nil
}

// DeliveryStatusUpdateRequest patches the transit progress of one shipment.
type DeliveryStatusUpdateRequest struct {
	DeliveryStatus string `json:"delivery_status"`
}

func (r DeliveryStatusUpdateRequest) Validate() error {
	if r.DeliveryStatus == "" {
		return fmt.Errorf("delivery_status is required")
	}
	if !shipmentModel.DeliveryStatus(r.DeliveryStatus).IsValid() {
		return fmt.Errorf("delivery_status must be one of IN_PROCESS, IN_TRANSIT, DELIVERED")
	}
	return nil
}

// StatusUpdateRequest patches the administrative status of one shipment.
// DELETED is reserved and rejected here.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

func (r StatusUpdateRequest) Validate() error {
	if r.Status == "" {
		return fmt.Errorf("status is required")
	}
	if !shipmentModel.Status(r.Status).IsAssignable() {
		return fmt.Errorf("status must be ACTIVE or CANCELLED")
	}
	return nil
}

// ManualDescUpdateRequest replaces the free-text annotation of one shipment.
// An empty string clears it, so no required check is applied.
type ManualDescUpdateRequest struct {
	ManualDesc string `json:"manual_desc"`
}
