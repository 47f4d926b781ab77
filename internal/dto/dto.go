// dto.go
package dto

import "time"

// Wire types for the three endpoints. Field names (including the
// historical "schduled" spellings) match the existing client service so
// the mini-program frontend keeps working unchanged.

type HeartbeatResult struct {
	IsAlive bool `json:"is_alive"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserAuth is the login response. User carries the display name: the
// customer's zem_name, or the staff member's full name.
type UserAuth struct {
	User        string `json:"user"`
	AccessToken string `json:"access_token"`
	UserType    string `json:"user_type"` // "customer" or "staff"
}

type OrderTrackingRequest struct {
	ContainerNumber string `json:"container_number" binding:"required"`
}

type UserResponse struct {
	ZemName        string  `json:"zem_name"`
	FullName       *string `json:"full_name"`
	ZemCode        *string `json:"zem_code"`
	Email          *string `json:"email"`
	Note           *string `json:"note"`
	Phone          *string `json:"phone"`
	AccountingName *string `json:"accounting_name"`
	Address        *string `json:"address"`
	Username       *string `json:"username"`
}

type ContainerResponse struct {
	ContainerNumber    string   `json:"container_number"`
	ContainerType      *string  `json:"container_type"`
	WeightLbs          *float64 `json:"weight_lbs"`
	IsSpecialContainer *bool    `json:"is_special_container"`
	Note               *string  `json:"note"`
}

type WarehouseResponse struct {
	Name    string  `json:"name"`
	Address *string `json:"address"`
}

type VesselResponse struct {
	VesselID           *string    `json:"vessel_id"`
	MasterBillOfLading *string    `json:"master_bill_of_lading"`
	OriginPort         *string    `json:"origin_port"`
	DestinationPort    *string    `json:"destination_port"`
	ShippingLine       *string    `json:"shipping_line"`
	Vessel             *string    `json:"vessel"`
	Voyage             *string    `json:"voyage"`
	VesselETD          *time.Time `json:"vessel_etd"`
	VesselETA          *time.Time `json:"vessel_eta"`
}

type RetrievalResponse struct {
	RetrievalID                   *string    `json:"retrieval_id"`
	ShippingOrderNumber           *string    `json:"shipping_order_number"`
	MasterBillOfLading            *string    `json:"master_bill_of_lading"`
	RetriveByZem                  *bool      `json:"retrive_by_zem"`
	RetrievalCarrier              *string    `json:"retrieval_carrier"`
	OriginPort                    *string    `json:"origin_port"`
	DestinationPort               *string    `json:"destination_port"`
	ShippingLine                  *string    `json:"shipping_line"`
	RetrievalDestinationPrecise   *string    `json:"retrieval_destination_precise"`
	AssignedByAppt                *bool      `json:"assigned_by_appt"`
	RetrievalDestinationArea      *string    `json:"retrieval_destination_area"`
	ScheduledAt                   *time.Time `json:"scheduled_at"`
	TargetRetrievalTimestamp      *time.Time `json:"target_retrieval_timestamp"`
	TargetRetrievalTimestampLower *time.Time `json:"target_retrieval_timestamp_lower"`
	ActualRetrievalTimestamp      *time.Time `json:"actual_retrieval_timestamp"`
	Note                          *string    `json:"note"`
	ArriveAtDestination           *bool      `json:"arrive_at_destination"`
	ArriveAt                      *time.Time `json:"arrive_at"`
	EmptyReturned                 *bool      `json:"empty_returned"`
	EmptyReturnedAt               *time.Time `json:"empty_returned_at"`
	TempT49LFD                    *string    `json:"temp_t49_lfd"`
	TempT49AvailableForPickup     *bool      `json:"temp_t49_available_for_pickup"`
	TempT49PodArriveAt            *time.Time `json:"temp_t49_pod_arrive_at"`
	TempT49PodDischargeAt         *time.Time `json:"temp_t49_pod_discharge_at"`
	TempT49HoldStatus             *bool      `json:"temp_t49_hold_status"`
}

type OffloadResponse struct {
	OffloadID       *string    `json:"offload_id"`
	OffloadRequired *bool      `json:"offload_required"`
	OffloadAt       *time.Time `json:"offload_at"`
	TotalPallet     *int       `json:"total_pallet"`
}

// TrackingEvent is one node of the pre-port timeline. Timestamp is
// rendered as naive China local time ("2006-01-02T15:04:05").
type TrackingEvent struct {
	Status      string `json:"status"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	Timestamp   string `json:"timestamp,omitempty"`
}

type OrderPreportResponse struct {
	OrderID            *string            `json:"order_id"`
	CreatedAt          time.Time          `json:"created_at"`
	ETA                *string            `json:"eta"`
	OrderType          *string            `json:"order_type"`
	AddToT49           *bool              `json:"add_to_t49"`
	CancelNotification *bool              `json:"cancel_notification"`
	CancelTime         *string            `json:"cancel_time"`
	User               *UserResponse      `json:"user"`
	Container          *ContainerResponse `json:"container"`
	Warehouse          *WarehouseResponse `json:"warehouse"`
	Vessel             *VesselResponse    `json:"vessel"`
	Retrieval          *RetrievalResponse `json:"retrieval"`
	Offload            *OffloadResponse   `json:"offload"`
	History            []TrackingEvent    `json:"history"`
}

type PalletShipmentSummary struct {
	Destination               *string  `json:"destination"`
	POID                      *string  `json:"PO_ID"`
	DeliveryMethod            *string  `json:"delivery_method"`
	Note                      *string  `json:"note"`
	DeliveryType              *string  `json:"delivery_type"`
	MasterShipmentBatchNumber *string  `json:"master_shipment_batch_number"`
	IsShipmentSchduled        *bool    `json:"is_shipment_schduled"`
	ShipmentSchduledAt        *string  `json:"shipment_schduled_at"`
	ShipmentAppointment       *string  `json:"shipment_appointment"`
	IsShipped                 *bool    `json:"is_shipped"`
	ShippedAt                 *string  `json:"shipped_at"`
	IsArrived                 *bool    `json:"is_arrived"`
	ArrivedAt                 *string  `json:"arrived_at"`
	PodLink                   *string  `json:"pod_link"`
	PodUploadedAt             *string  `json:"pod_uploaded_at"`
	CBM                       *float64 `json:"cbm"`
	WeightKg                  *float64 `json:"weight_kg"`
	NPallet                   *int     `json:"n_pallet"`
	Pcs                       *int     `json:"pcs"`
}

type OrderPostportResponse struct {
	Shipment []PalletShipmentSummary `json:"shipment"`
}

type OrderResponse struct {
	PreportTimenode  *OrderPreportResponse  `json:"preport_timenode"`
	PostportTimenode *OrderPostportResponse `json:"postport_timenode"`
	HasPermission    bool                   `json:"has_permission"`
	Message          *string                `json:"message"`
}
