package domain

import (
	"errors"
	"strings"
)

// ShipmentStatus is the lifecycle state reported by the courier backend.
type ShipmentStatus string

const (
	StatusPending        ShipmentStatus = "PENDING"
	StatusPickedUp       ShipmentStatus = "PICKED_UP"
	StatusInTransit      ShipmentStatus = "IN_TRANSIT"
	StatusOutForDelivery ShipmentStatus = "OUT_FOR_DELIVERY"
	StatusDelivered      ShipmentStatus = "DELIVERED"
	StatusCancelled      ShipmentStatus = "CANCELLED"
	StatusReturned       ShipmentStatus = "RETURNED"
)

var ErrShipmentNotFound = errors.New("shipment not found")

// Label returns the status as display text, e.g. "OUT FOR DELIVERY".
func (s ShipmentStatus) Label() string {
	return strings.ReplaceAll(string(s), "_", " ")
}

// Active reports whether the shipment is still moving through the network.
func (s ShipmentStatus) Active() bool {
	return s != StatusDelivered && s != StatusCancelled
}

// ShipmentRecord is the backend's view of a booked shipment.
type ShipmentRecord struct {
	ID                int64          `json:"id"`
	TrackingNumber    string         `json:"trackingNumber"`
	Status            ShipmentStatus `json:"status"`
	SenderName        string         `json:"senderName"`
	SenderAddress     string         `json:"senderAddress"`
	ReceiverName      string         `json:"receiverName"`
	ReceiverAddress   string         `json:"receiverAddress"`
	TotalPrice        float64        `json:"totalPrice"`
	EstimatedDelivery *Timestamp     `json:"estimatedDelivery,omitempty"`
	CreatedAt         *Timestamp     `json:"createdAt,omitempty"`
}

// TrackingEvent is one entry of a shipment's status history.
type TrackingEvent struct {
	Status      ShipmentStatus `json:"status"`
	Location    string         `json:"location"`
	Description string         `json:"description"`
	Timestamp   Timestamp      `json:"timestamp"`
}

// Located reports whether the event carries a usable location text.
func (e TrackingEvent) Located() bool {
	return strings.TrimSpace(e.Location) != ""
}

// LatestLocated returns the most recent event with a non-empty location.
// Ties on timestamp resolve to the later entry in the slice.
func LatestLocated(events []TrackingEvent) (TrackingEvent, bool) {
	var (
		latest TrackingEvent
		found  bool
	)
	for _, ev := range events {
		if !ev.Located() {
			continue
		}
		if !found || !ev.Timestamp.Before(latest.Timestamp.Time) {
			latest, found = ev, true
		}
	}
	return latest, found
}

// Confirmation is returned by the backend once a booking is created.
type Confirmation struct {
	BookingID         string     `json:"bookingId"`
	TrackingNumber    string     `json:"trackingNumber"`
	AWBNumber         string     `json:"awbNumber"`
	ShipmentID        int64      `json:"shipmentId"`
	TotalPrice        float64    `json:"totalPrice"`
	EstimatedDelivery *Timestamp `json:"estimatedDelivery,omitempty"`
	Message           string     `json:"message"`
}
