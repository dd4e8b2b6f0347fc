package enquiry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	shipmentModel "logistics-erp/models/shipment"
)

// Prefix is the fixed leading segment of every enquiry number.
const Prefix = "QMRel"

// ErrSequenceUnavailable wraps store failures during number generation so
// callers can tell "generation failed" apart from other errors and apply
// their own placeholder fallback.
var ErrSequenceUnavailable = errors.New("enquiry sequence unavailable")

// Next computes the next enquiry number for the given year:
// QMRel-<year>-<seq> where seq is one greater than the highest already issued
// for that year, zero-padded to four digits, starting at 0001.
//
// The highest issued number is found by ordering on length before value:
// the sequence overflows its four-digit padding at 10000, and from there a
// plain string sort would rank it below 9999.
//
// The read is not atomic with the subsequent insert. Uniqueness is enforced
// by the unique index on shipments.enquiry_no: on a duplicate-key error the
// caller recomputes and retries (see controllers/shipment).
func Next(db *gorm.DB, year int) (string, error) {
	prefix := fmt.Sprintf("%s-%d-", Prefix, year)

	var last shipmentModel.Shipment
	err := db.
		Where("enquiry_no LIKE ?", prefix+"%").
		Order("LENGTH(enquiry_no) DESC, enquiry_no DESC").
		First(&last).Error

	seq := 1
	switch {
	case err == nil:
		n, perr := ParseSeq(*last.EnquiryNo)
		if perr != nil {
			return "", fmt.Errorf("%w: %v", ErrSequenceUnavailable, perr)
		}
		seq = n + 1
	case errors.Is(err, gorm.ErrRecordNotFound):
		// first shipment of the year
	default:
		return "", fmt.Errorf("%w: %v", ErrSequenceUnavailable, err)
	}

	return Format(year, seq), nil
}

// NextForNow is Next for the current calendar year.
func NextForNow(db *gorm.DB) (string, error) {
	return Next(db, time.Now().Year())
}

// Format renders an enquiry number from its parts.
func Format(year, seq int) string {
	return fmt.Sprintf("%s-%d-%04d", Prefix, year, seq)
}

// ParseSeq extracts the trailing sequence segment of an enquiry number.
func ParseSeq(no string) (int, error) {
	parts := strings.Split(no, "-")
	if len(parts) != 3 || parts[0] != Prefix {
		return 0, fmt.Errorf("malformed enquiry number %q", no)
	}
	seq, err := strconv.Atoi(parts[2])
	if err != nil {
		return 0, fmt.Errorf("malformed enquiry number %q", no)
	}
	return seq, nil
}
