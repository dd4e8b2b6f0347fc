package shipment

// Status is the administrative state of a shipment record, independent of
// delivery progress. A cancelled shipment may still carry any delivery status.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusCancelled Status = "CANCELLED"
	// StatusDeleted is a filter value only: default listings exclude it and
	// no endpoint transitions a record into it. Reserved for soft delete.
	StatusDeleted Status = "DELETED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusCancelled, StatusDeleted:
		return true
	default:
		return false
	}
}

// IsAssignable reports whether the status endpoint accepts this value.
// DELETED is reserved and never assignable through the API.
func (s Status) IsAssignable() bool {
	return s == StatusActive || s == StatusCancelled
}

// DeliveryStatus tracks physical transit progress. Transitions are free among
// the three values; the backend does not enforce an ordering.
type DeliveryStatus string

const (
	DeliveryInProcess DeliveryStatus = "IN_PROCESS"
	DeliveryInTransit DeliveryStatus = "IN_TRANSIT"
	DeliveryDelivered DeliveryStatus = "DELIVERED"
)

func (ds DeliveryStatus) String() string {
	return string(ds)
}

func (ds DeliveryStatus) IsValid() bool {
	switch ds {
	case DeliveryInProcess, DeliveryInTransit, DeliveryDelivered:
		return true
	default:
		return false
	}
}

// Transport modes accepted by the shipment form.
var Modes = []string{"Sea", "Air", "Road", "Rail"}

// Incoterms accepted by the shipment form, the eleven 2020 codes.
var Incoterms = []string{
	"EXW", "FCA", "FAS", "FOB", "CFR", "CIF",
	"CPT", "CIP", "DAP", "DPU", "DDP",
}

func IsValidMode(m string) bool {
	for _, v := range Modes {
		if v == m {
			return true
		}
	}
	return false
}

func IsValidIncoterm(i string) bool {
	for _, v := range Incoterms {
		if v == i {
			return true
		}
	}
	return false
}
