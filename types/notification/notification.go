package notification

import (
	"fmt"
	"strings"
)

// TrackingMailRequest is the payload for the tracking notification mail:
// recipient plus the shipment fields rendered in the message body.
type TrackingMailRequest struct {
	To          string `json:"to"`
	Subject     string `json:"subject"`
	Message     string `json:"message"`
	BLNo        string `json:"bl_no"`
	ContainerNo string `json:"container_no"`
	ETD         string `json:"etd"`
	ETA         string `json:"eta"`
}

func (r TrackingMailRequest) Validate() error {
	if r.To == "" {
		return fmt.Errorf("to is required")
	}
	if !strings.Contains(r.To, "@") {
		return fmt.Errorf("to must be an email address")
	}
	if r.Subject == "" {
		return fmt.Errorf("subject is required")
	}
	return nil
}
