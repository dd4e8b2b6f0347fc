package shipment

import (
	"time"
)

// Shipment represents one logistics consignment from creation through delivery.
// Optional fields are pointers so a blank form value is stored as NULL, never "".
type Shipment struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	EnquiryNo *string `gorm:"type:varchar(50);uniqueIndex" json:"enquiry_no"`
	FF        *string `gorm:"type:varchar(255)" json:"ff"`
	Customer  *string `gorm:"type:varchar(255)" json:"customer"`

	InvoiceNo   *string `gorm:"type:varchar(100)" json:"invoice_no"`
	InvoiceDate *string `gorm:"type:varchar(50)" json:"invoice_date"`

	PartNo   *string `gorm:"type:varchar(100);index" json:"part_no"`
	PartDesc *string `gorm:"type:varchar(255)" json:"part_desc"`

	PartQty     *int64   `json:"part_qty"`
	NetWt       *float64 `gorm:"type:decimal(12,3)" json:"net_wt"`
	GrossWt     *float64 `gorm:"type:decimal(12,3)" json:"gross_wt"`
	PackagingWt *float64 `gorm:"type:decimal(12,3)" json:"packaging_wt"`

	BoxSize     *string `gorm:"type:varchar(100)" json:"box_size"`
	PackageType *string `gorm:"type:varchar(100)" json:"package_type"`

	Mode *string `gorm:"type:varchar(20)" json:"mode"`

	DispatchDate *time.Time `json:"dispatch_date"`
	Incoterm     *string    `gorm:"type:varchar(10)" json:"incoterm"`

	SBNo   *string    `gorm:"type:varchar(100)" json:"sb_no"`
	SBDate *time.Time `json:"sb_date"`

	ETD *time.Time `json:"etd"`
	ETA *time.Time `json:"eta"`

	BLNo        *string `gorm:"type:varchar(100)" json:"bl_no"`
	ContainerNo *string `gorm:"type:varchar(100)" json:"container_no"`

	FinalDelivery *time.Time `json:"final_delivery"`

	NotifyEmail  *string `gorm:"type:varchar(255)" json:"notify_email"`
	EmailMessage *string `gorm:"type:text" json:"email_message"`

	ManualDesc *string `gorm:"type:text" json:"manual_desc"`

	LabelURLs []string `gorm:"serializer:json" json:"label_urls"`

	Status         Status         `gorm:"type:varchar(20);not null;default:ACTIVE;index" json:"status"`
	DeliveryStatus DeliveryStatus `gorm:"type:varchar(20);not null;default:IN_PROCESS" json:"delivery_status"`

	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName sets the table name for the Shipment model
func (Shipment) TableName() string {
	return "shipments"
}

// AssignData copies every data field from src onto s, leaving the lifecycle
// fields (status, delivery_status) and record identity untouched. Used by the
// replace operation, which overwrites the full normalized field set.
func (s *Shipment) AssignData(src *Shipment) {
	if src.EnquiryNo != nil {
		s.EnquiryNo = src.EnquiryNo
	}
	s.FF = src.FF
	s.Customer = src.Customer
	s.InvoiceNo = src.InvoiceNo
	s.InvoiceDate = src.InvoiceDate
	s.PartNo = src.PartNo
	s.PartDesc = src.PartDesc
	s.PartQty = src.PartQty
	s.NetWt = src.NetWt
	s.GrossWt = src.GrossWt
	s.PackagingWt = src.PackagingWt
	s.BoxSize = src.BoxSize
	s.PackageType = src.PackageType
	s.Mode = src.Mode
	s.DispatchDate = src.DispatchDate
	s.Incoterm = src.Incoterm
	s.SBNo = src.SBNo
	s.SBDate = src.SBDate
	s.ETD = src.ETD
	s.ETA = src.ETA
	s.BLNo = src.BLNo
	s.ContainerNo = src.ContainerNo
	s.FinalDelivery = src.FinalDelivery
	s.NotifyEmail = src.NotifyEmail
	s.EmailMessage = src.EmailMessage
	s.ManualDesc = src.ManualDesc
	if src.LabelURLs != nil {
		s.LabelURLs = src.LabelURLs
	}
}

// HasPartMasterData reports whether the record carries both a part number and
// a description, i.e. whether the part master should be refreshed.
func (s *Shipment) HasPartMasterData() bool {
	return s.PartNo != nil && *s.PartNo != "" && s.PartDesc != nil && *s.PartDesc != ""
}
