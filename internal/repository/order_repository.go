package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"container-tracking-service/internal/model"
)

// OrderRepository reads the order tracking graph. All queries are
// read-only; the Django warehouse system owns every write path.
type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// FindOrderByContainerNumber loads the first order whose container has
// the given number, together with its owning customer and the warehouse,
// vessel, retrieval and offload records. Returns (nil, nil) when no
// order matches. Container numbers are not enforced unique upstream;
// first match by order id mirrors the existing client service.
func (r *OrderRepository) FindOrderByContainerNumber(ctx context.Context, containerNumber string) (*model.OrderDetail, error) {
	query := `
	SELECT
		o.order_id,
		o.created_at,
		o.eta,
		o.order_type,
		o.add_to_t49,
		o.cancel_notification,
		o.cancel_time,
		u.id,
		u.zem_name,
		u.full_name,
		u.zem_code,
		u.email,
		u.note,
		u.phone,
		u.accounting_name,
		u.address,
		u.username,
		c.container_number,
		c.container_type,
		c.weight_lbs,
		c.is_special_container,
		c.note,
		w.id,
		w.name,
		w.address,
		v.id,
		v.vessel_id,
		v.master_bill_of_lading,
		v.origin_port,
		v.destination_port,
		v.shipping_line,
		v.vessel,
		v.voyage,
		v.vessel_etd,
		v.vessel_eta,
		rt.id,
		rt.retrieval_id,
		rt.shipping_order_number,
		rt.master_bill_of_lading,
		rt.retrive_by_zem,
		rt.retrieval_carrier,
		rt.origin_port,
		rt.destination_port,
		rt.shipping_line,
		rt.retrieval_destination_precise,
		rt.assigned_by_appt,
		rt.retrieval_destination_area,
		rt.scheduled_at,
		rt.target_retrieval_timestamp,
		rt.target_retrieval_timestamp_lower,
		rt.actual_retrieval_timestamp,
		rt.note,
		rt.arrive_at_destination,
		rt.arrive_at,
		rt.empty_returned,
		rt.empty_returned_at,
		rt.temp_t49_lfd,
		rt.temp_t49_available_for_pickup,
		rt.temp_t49_pod_arrive_at,
		rt.temp_t49_pod_discharge_at,
		rt.temp_t49_hold_status,
		ol.id,
		ol.offload_id,
		ol.offload_required,
		ol.offload_at,
		ol.total_pallet
	FROM warehouse_order o
	JOIN warehouse_container c ON c.id = o.container_number_id
	LEFT JOIN warehouse_customer u ON u.id = o.customer_name_id
	LEFT JOIN warehouse_zemwarehouse w ON w.id = o.warehouse_id
	LEFT JOIN warehouse_vessel v ON v.id = o.vessel_id_id
	LEFT JOIN warehouse_retrieval rt ON rt.id = o.retrieval_id_id
	LEFT JOIN warehouse_offload ol ON ol.id = o.offload_id_id
	WHERE c.container_number = $1
	ORDER BY o.id
	LIMIT 1;
	`

	detail := &model.OrderDetail{}
	user := &model.Customer{}
	container := &model.Container{}
	warehouse := &model.Warehouse{}
	vessel := &model.Vessel{}
	retrieval := &model.Retrieval{}
	offload := &model.Offload{}

	// Left-joined rows may be entirely NULL, so row presence is keyed on
	// each table's id and the non-pointer struct fields scan via temps.
	var (
		userID, warehouseID, vesselID, retrievalID, offloadID sql.NullInt64

		zemName, custUsername, warehouseName, containerNumberCol *string
	)

	err := r.db.QueryRowContext(ctx, query, containerNumber).Scan(
		&detail.OrderID,
		&detail.CreatedAt,
		&detail.ETA,
		&detail.OrderType,
		&detail.AddToT49,
		&detail.CancelNotification,
		&detail.CancelTime,
		&userID,
		&zemName,
		&user.FullName,
		&user.ZemCode,
		&user.Email,
		&user.Note,
		&user.Phone,
		&user.AccountingName,
		&user.Address,
		&custUsername,
		&containerNumberCol,
		&container.ContainerType,
		&container.WeightLbs,
		&container.IsSpecialContainer,
		&container.Note,
		&warehouseID,
		&warehouseName,
		&warehouse.Address,
		&vesselID,
		&vessel.VesselID,
		&vessel.MasterBillOfLading,
		&vessel.OriginPort,
		&vessel.DestinationPort,
		&vessel.ShippingLine,
		&vessel.Vessel,
		&vessel.Voyage,
		&vessel.VesselETD,
		&vessel.VesselETA,
		&retrievalID,
		&retrieval.RetrievalID,
		&retrieval.ShippingOrderNumber,
		&retrieval.MasterBillOfLading,
		&retrieval.RetriveByZem,
		&retrieval.RetrievalCarrier,
		&retrieval.OriginPort,
		&retrieval.DestinationPort,
		&retrieval.ShippingLine,
		&retrieval.RetrievalDestinationPrecise,
		&retrieval.AssignedByAppt,
		&retrieval.RetrievalDestinationArea,
		&retrieval.ScheduledAt,
		&retrieval.TargetRetrievalTimestamp,
		&retrieval.TargetRetrievalTimestampLower,
		&retrieval.ActualRetrievalTimestamp,
		&retrieval.Note,
		&retrieval.ArriveAtDestination,
		&retrieval.ArriveAt,
		&retrieval.EmptyReturned,
		&retrieval.EmptyReturnedAt,
		&retrieval.TempT49LFD,
		&retrieval.TempT49AvailableForPickup,
		&retrieval.TempT49PodArriveAt,
		&retrieval.TempT49PodDischargeAt,
		&retrieval.TempT49HoldStatus,
		&offloadID,
		&offload.OffloadID,
		&offload.OffloadRequired,
		&offload.OffloadAt,
		&offload.TotalPallet,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find order by container number: %w", err)
	}

	if containerNumberCol != nil {
		container.ContainerNumber = *containerNumberCol
	}
	detail.Container = container

	if userID.Valid {
		user.ID = int(userID.Int64)
		if zemName != nil {
			user.ZemName = *zemName
		}
		if custUsername != nil {
			user.Username = *custUsername
		}
		detail.User = user
	}
	if warehouseID.Valid {
		if warehouseName != nil {
			warehouse.Name = *warehouseName
		}
		detail.Warehouse = warehouse
	}
	if vesselID.Valid {
		detail.Vessel = vessel
	}
	if retrievalID.Valid {
		detail.Retrieval = retrieval
	}
	if offloadID.Valid {
		detail.Offload = offload
	}

	return detail, nil
}

// SummarizePallets aggregates the container's pallets into shipment
// batches: grouped by destination/PO and the shipment's descriptive and
// status columns, with summed volume, weight converted from pounds to
// kilograms, and pallet/piece counts.
func (r *OrderRepository) SummarizePallets(ctx context.Context, containerNumber string) ([]model.PalletShipmentSummary, error) {
	query := `
	SELECT
		p.destination,
		p."PO_ID",
		p.delivery_method,
		p.note,
		p.delivery_type,
		s.shipment_batch_number,
		s.is_shipment_schduled,
		s.shipment_schduled_at,
		s.shipment_appointment_utc,
		s.is_shipped,
		s.shipped_at_utc,
		s.is_arrived,
		s.arrived_at_utc,
		s.pod_link,
		s.pod_uploaded_at,
		ROUND(SUM(p.cbm)::numeric, 4) AS cbm,
		ROUND((SUM(p.weight_lbs) / 2.20462)::numeric, 2) AS weight_kg,
		COUNT(DISTINCT p.id) AS n_pallet,
		COUNT(p.pcs) AS pcs
	FROM warehouse_pallet p
	JOIN warehouse_container c ON c.id = p.container_number_id
	LEFT JOIN warehouse_shipment s ON s.id = p.master_shipment_batch_number_id
	WHERE c.container_number = $1
	GROUP BY
		p.destination,
		p."PO_ID",
		p.delivery_method,
		p.note,
		p.delivery_type,
		s.shipment_batch_number,
		s.is_shipment_schduled,
		s.shipment_schduled_at,
		s.shipment_appointment_utc,
		s.is_shipped,
		s.shipped_at_utc,
		s.is_arrived,
		s.arrived_at_utc,
		s.pod_link,
		s.pod_uploaded_at;
	`

	rows, err := r.db.QueryContext(ctx, query, containerNumber)
	if err != nil {
		return nil, fmt.Errorf("summarize pallets: query: %w", err)
	}
	defer rows.Close()

	summaries := make([]model.PalletShipmentSummary, 0, 8)
	for rows.Next() {
		var s model.PalletShipmentSummary
		err := rows.Scan(
			&s.Destination,
			&s.POID,
			&s.DeliveryMethod,
			&s.Note,
			&s.DeliveryType,
			&s.ShipmentBatchNumber,
			&s.IsShipmentScheduled,
			&s.ShipmentScheduledAt,
			&s.ShipmentAppointment,
			&s.IsShipped,
			&s.ShippedAt,
			&s.IsArrived,
			&s.ArrivedAt,
			&s.PodLink,
			&s.PodUploadedAt,
			&s.CBM,
			&s.WeightKg,
			&s.NPallet,
			&s.Pcs,
		)
		if err != nil {
			return nil, fmt.Errorf("summarize pallets: scan row: %w", err)
		}
		summaries = append(summaries, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("summarize pallets: row iteration: %w", err)
	}

	return summaries, nil
}
