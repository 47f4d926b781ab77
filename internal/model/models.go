// models.go
package model

import "time"

// Row structs for the tables shared with the Django warehouse system.
// This service only reads them; nullable columns are pointers.

// Customer maps warehouse_customer. ZemName is the customer's unique
// name inside the system and is what order ownership is checked against.
type Customer struct {
	ID             int
	ZemName        string
	FullName       *string
	ZemCode        *string
	Email          *string
	Note           *string
	Phone          *string
	AccountingName *string
	Address        *string
	Username       string
	Password       *string
}

// StaffUser maps the Django-managed auth_user table.
type StaffUser struct {
	ID        int
	Username  string
	Password  string
	FirstName string
	LastName  string
	IsActive  bool
}

// Order maps warehouse_order, the root of the tracking graph.
type Order struct {
	OrderID            *string
	CreatedAt          time.Time
	ETA                *time.Time
	OrderType          *string
	AddToT49           *bool
	CancelNotification *bool
	CancelTime         *time.Time
}

// Container maps warehouse_container. ContainerNumber is the lookup key.
type Container struct {
	ContainerNumber    string
	ContainerType      *string
	WeightLbs          *float64
	IsSpecialContainer *bool
	Note               *string
}

// Warehouse maps warehouse_zemwarehouse.
type Warehouse struct {
	Name    string
	Address *string
}

// Vessel maps warehouse_vessel.
type Vessel struct {
	VesselID           *string
	MasterBillOfLading *string
	OriginPort         *string
	DestinationPort    *string
	ShippingLine       *string
	Vessel             *string
	Voyage             *string
	VesselETD          *time.Time
	VesselETA          *time.Time
}

// Retrieval maps warehouse_retrieval. The temp_t49 columns are fed by the
// T49 port tracker and drive the port-stage timeline events.
type Retrieval struct {
	RetrievalID                   *string
	ShippingOrderNumber           *string
	MasterBillOfLading            *string
	RetriveByZem                  *bool
	RetrievalCarrier              *string
	OriginPort                    *string
	DestinationPort               *string
	ShippingLine                  *string
	RetrievalDestinationPrecise   *string
	AssignedByAppt                *bool
	RetrievalDestinationArea      *string
	ScheduledAt                   *time.Time
	TargetRetrievalTimestamp      *time.Time
	TargetRetrievalTimestampLower *time.Time
	ActualRetrievalTimestamp      *time.Time
	Note                          *string
	ArriveAtDestination           *bool
	ArriveAt                      *time.Time
	EmptyReturned                 *bool
	EmptyReturnedAt               *time.Time
	TempT49LFD                    *time.Time
	TempT49AvailableForPickup     *bool
	TempT49PodArriveAt            *time.Time
	TempT49PodDischargeAt         *time.Time
	TempT49HoldStatus             *bool
}

// Offload maps warehouse_offload.
type Offload struct {
	OffloadID       *string
	OffloadRequired *bool
	OffloadAt       *time.Time
	TotalPallet     *int
}

// OrderDetail is the joined view the tracking lookup works on: the first
// order row matching a container number plus its related records.
// Container is always present (inner join); everything else may be nil.
type OrderDetail struct {
	Order
	User      *Customer
	Container *Container
	Warehouse *Warehouse
	Vessel    *Vessel
	Retrieval *Retrieval
	Offload   *Offload
}

// PalletShipmentSummary is one grouped row of the post-port aggregation:
// pallets of a container grouped by destination/PO and shipment batch,
// with summed volume and weight and pallet/piece counts.
type PalletShipmentSummary struct {
	Destination         *string
	POID                *string
	DeliveryMethod      *string
	Note                *string
	DeliveryType        *string
	ShipmentBatchNumber *string
	IsShipmentScheduled *bool
	ShipmentScheduledAt *time.Time
	ShipmentAppointment *time.Time
	IsShipped           *bool
	ShippedAt           *time.Time
	IsArrived           *bool
	ArrivedAt           *time.Time
	PodLink             *string
	PodUploadedAt       *time.Time
	CBM                 *float64
	WeightKg            *float64
	NPallet             int
	Pcs                 int
}
