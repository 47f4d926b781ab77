package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"container-tracking-service/internal/dto"
	"container-tracking-service/internal/model"
)

// Timeline status codes, in business-stage order.
const (
	StatusOrderCreated        = "ORDER_CREATED"
	StatusArrivedAtPort       = "ARRIVED_AT_PORT"
	StatusPortUnloading       = "PORT_UNLOADING"
	StatusPortPickupScheduled = "PORT_PICKUP_SCHEDULED"
	StatusArriveAtWarehouse   = "ARRIVE_AT_WAREHOUSE"
	StatusOffload             = "OFFLOAD"
	StatusEmptyReturn         = "EMPTY_RETURN"
)

// Timestamps are stored in UTC and rendered as naive China local time.
// A fixed offset, not the IANA zone: the output has no DST and matches
// what the frontend already parses.
var chinaTZ = time.FixedZone("Asia/Shanghai", 8*60*60)

const naiveTimeLayout = "2006-01-02T15:04:05"

// Interface over the order tracking graph, implemented by repository.
type OrderRepository interface {
	FindOrderByContainerNumber(ctx context.Context, containerNumber string) (*model.OrderDetail, error)
	SummarizePallets(ctx context.Context, containerNumber string) ([]model.PalletShipmentSummary, error)
}

// TrackingService builds the full tracking response for a container
// number: the pre-port timeline, the post-port shipment summary, and the
// ownership gate for customer identities.
type TrackingService struct {
	orders OrderRepository
}

func NewTrackingService(orders OrderRepository) *TrackingService {
	return &TrackingService{orders: orders}
}

// BuildOrderHistory is the single entry point behind POST /order_tracking.
//
// An unknown container is a successful, empty response with an
// explanatory message; a customer asking about another customer's
// container gets has_permission=false with no order fields. Neither is
// an error.
func (s *TrackingService) BuildOrderHistory(ctx context.Context, user *CurrentUser, containerNumber string) (*dto.OrderResponse, error) {
	containerNumber = strings.TrimSpace(containerNumber)

	detail, err := s.orders.FindOrderByContainerNumber(ctx, containerNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if detail == nil {
		msg := fmt.Sprintf("未找到柜号 %s 的相关信息", containerNumber)
		return &dto.OrderResponse{
			HasPermission: true,
			Message:       &msg,
		}, nil
	}

	// Customers may only see containers whose order they own. An order
	// with no owner at all is also off-limits to every customer. Staff
	// identities skip the check entirely.
	if user.IsCustomer() {
		if detail.User == nil || detail.User.ZemName != user.OwnershipKey() {
			msg := fmt.Sprintf("您没有权限查看柜号 %s 的详情，该柜子归属于其他客户", containerNumber)
			return &dto.OrderResponse{
				HasPermission: false,
				Message:       &msg,
			}, nil
		}
	}

	preport := s.buildPreport(detail)
	postport := s.buildPostport(ctx, containerNumber)

	return &dto.OrderResponse{
		PreportTimenode:  preport,
		PostportTimenode: postport,
		HasPermission:    true,
	}, nil
}

// buildPreport maps the joined order records onto the response and builds
// the event timeline. Events appear in fixed business order; each is
// emitted only when its triggering field is set, so a partially
// progressed order yields a prefix of the full sequence.
func (s *TrackingService) buildPreport(detail *model.OrderDetail) *dto.OrderPreportResponse {
	resp := &dto.OrderPreportResponse{
		OrderID:            detail.OrderID,
		CreatedAt:          detail.CreatedAt,
		ETA:                formatDate(detail.ETA),
		OrderType:          detail.OrderType,
		AddToT49:           detail.AddToT49,
		CancelNotification: detail.CancelNotification,
		CancelTime:         formatDate(detail.CancelTime),
		User:               toUserResponse(detail.User),
		Container:          toContainerResponse(detail.Container),
		Warehouse:          toWarehouseResponse(detail.Warehouse),
		Vessel:             toVesselResponse(detail.Vessel),
		Retrieval:          toRetrievalResponse(detail.Retrieval),
		Offload:            toOffloadResponse(detail.Offload),
	}

	history := make([]dto.TrackingEvent, 0, 7)
	retrieval := detail.Retrieval

	history = append(history, dto.TrackingEvent{
		Status:      StatusOrderCreated,
		Description: fmt.Sprintf("创建订单: %s", detail.Container.ContainerNumber),
		Timestamp:   toChinaLocal(detail.CreatedAt),
	})

	// Port arrival and discharge come from the T49 tracker and only
	// exist for orders enrolled in it.
	var pod string
	if detail.AddToT49 != nil && *detail.AddToT49 {
		if detail.Vessel != nil && detail.Vessel.DestinationPort != nil {
			pod = *detail.Vessel.DestinationPort
		}

		if retrieval != nil && retrieval.TempT49PodArriveAt != nil {
			history = append(history, dto.TrackingEvent{
				Status:      StatusArrivedAtPort,
				Description: fmt.Sprintf("到达港口: %s", pod),
				Location:    pod,
				Timestamp:   toChinaLocal(*retrieval.TempT49PodArriveAt),
			})
		}
		if retrieval != nil && retrieval.TempT49PodDischargeAt != nil {
			history = append(history, dto.TrackingEvent{
				Status:      StatusPortUnloading,
				Description: "港口卸货",
				Location:    pod,
				Timestamp:   toChinaLocal(*retrieval.TempT49PodDischargeAt),
			})
		}
	}

	if retrieval != nil {
		if retrieval.ScheduledAt != nil {
			var target string
			if retrieval.TargetRetrievalTimestamp != nil {
				target = toChinaLocal(*retrieval.TargetRetrievalTimestamp)
			}
			history = append(history, dto.TrackingEvent{
				Status:      StatusPortPickupScheduled,
				Description: fmt.Sprintf("预约港口提柜: 预计提柜时间 %s", target),
				Location:    pod,
				Timestamp:   toChinaLocal(*retrieval.ScheduledAt),
			})
		}

		if retrieval.ArriveAtDestination != nil && *retrieval.ArriveAtDestination {
			var precise, arrived string
			if retrieval.RetrievalDestinationPrecise != nil {
				precise = *retrieval.RetrievalDestinationPrecise
			}
			if retrieval.ArriveAt != nil {
				arrived = toChinaLocal(*retrieval.ArriveAt)
			}
			history = append(history, dto.TrackingEvent{
				Status:      StatusArriveAtWarehouse,
				Description: fmt.Sprintf("港口提柜完成, 货柜到达目的仓点 %s", precise),
				Location:    precise,
				Timestamp:   arrived,
			})
		}
	}

	if detail.Offload != nil {
		if detail.Offload.OffloadAt != nil {
			var location string
			if retrieval != nil && retrieval.RetrievalDestinationPrecise != nil {
				location = *retrieval.RetrievalDestinationPrecise
			}
			history = append(history, dto.TrackingEvent{
				Status:      StatusOffload,
				Description: "拆柜完成",
				Location:    location,
				Timestamp:   toChinaLocal(*detail.Offload.OffloadAt),
			})
		}

		if retrieval != nil && retrieval.EmptyReturned != nil && *retrieval.EmptyReturned {
			var returned string
			if retrieval.EmptyReturnedAt != nil {
				returned = toChinaLocal(*retrieval.EmptyReturnedAt)
			}
			history = append(history, dto.TrackingEvent{
				Status:      StatusEmptyReturn,
				Description: "已归还空箱",
				Timestamp:   returned,
			})
		}
	}

	resp.History = history
	return resp
}

// buildPostport runs the pallet/shipment aggregation. The timeline is
// the primary deliverable, so a failure here is logged and swallowed
// into an empty summary instead of failing the whole lookup.
func (s *TrackingService) buildPostport(ctx context.Context, containerNumber string) *dto.OrderPostportResponse {
	summaries, err := s.orders.SummarizePallets(ctx, containerNumber)
	if err != nil {
		log.Printf("pallet summary failed for container %s: %v", containerNumber, err)
		return &dto.OrderPostportResponse{Shipment: []dto.PalletShipmentSummary{}}
	}

	shipment := make([]dto.PalletShipmentSummary, 0, len(summaries))
	for _, row := range summaries {
		nPallet := row.NPallet
		pcs := row.Pcs
		shipment = append(shipment, dto.PalletShipmentSummary{
			Destination:               row.Destination,
			POID:                      row.POID,
			DeliveryMethod:            row.DeliveryMethod,
			Note:                      row.Note,
			DeliveryType:              row.DeliveryType,
			MasterShipmentBatchNumber: row.ShipmentBatchNumber,
			IsShipmentSchduled:        row.IsShipmentScheduled,
			ShipmentSchduledAt:        toChinaLocalPtr(row.ShipmentScheduledAt),
			ShipmentAppointment:       toChinaLocalPtr(row.ShipmentAppointment),
			IsShipped:                 row.IsShipped,
			ShippedAt:                 toChinaLocalPtr(row.ShippedAt),
			IsArrived:                 row.IsArrived,
			ArrivedAt:                 toChinaLocalPtr(row.ArrivedAt),
			PodLink:                   row.PodLink,
			PodUploadedAt:             toChinaLocalPtr(row.PodUploadedAt),
			CBM:                       row.CBM,
			WeightKg:                  row.WeightKg,
			NPallet:                   &nPallet,
			Pcs:                       &pcs,
		})
	}

	return &dto.OrderPostportResponse{Shipment: shipment}
}

func toChinaLocal(ts time.Time) string {
	return ts.In(chinaTZ).Format(naiveTimeLayout)
}

func toChinaLocalPtr(ts *time.Time) *string {
	if ts == nil {
		return nil
	}
	v := toChinaLocal(*ts)
	return &v
}

func formatDate(d *time.Time) *string {
	if d == nil {
		return nil
	}
	v := d.Format("2006-01-02")
	return &v
}

func toUserResponse(u *model.Customer) *dto.UserResponse {
	if u == nil {
		return nil
	}
	username := u.Username
	return &dto.UserResponse{
		ZemName:        u.ZemName,
		FullName:       u.FullName,
		ZemCode:        u.ZemCode,
		Email:          u.Email,
		Note:           u.Note,
		Phone:          u.Phone,
		AccountingName: u.AccountingName,
		Address:        u.Address,
		Username:       &username,
	}
}

func toContainerResponse(c *model.Container) *dto.ContainerResponse {
	if c == nil {
		return nil
	}
	return &dto.ContainerResponse{
		ContainerNumber:    c.ContainerNumber,
		ContainerType:      c.ContainerType,
		WeightLbs:          c.WeightLbs,
		IsSpecialContainer: c.IsSpecialContainer,
		Note:               c.Note,
	}
}

func toWarehouseResponse(w *model.Warehouse) *dto.WarehouseResponse {
	if w == nil {
		return nil
	}
	return &dto.WarehouseResponse{
		Name:    w.Name,
		Address: w.Address,
	}
}

func toVesselResponse(v *model.Vessel) *dto.VesselResponse {
	if v == nil {
		return nil
	}
	return &dto.VesselResponse{
		VesselID:           v.VesselID,
		MasterBillOfLading: v.MasterBillOfLading,
		OriginPort:         v.OriginPort,
		DestinationPort:    v.DestinationPort,
		ShippingLine:       v.ShippingLine,
		Vessel:             v.Vessel,
		Voyage:             v.Voyage,
		VesselETD:          v.VesselETD,
		VesselETA:          v.VesselETA,
	}
}

func toRetrievalResponse(r *model.Retrieval) *dto.RetrievalResponse {
	if r == nil {
		return nil
	}
	return &dto.RetrievalResponse{
		RetrievalID:                   r.RetrievalID,
		ShippingOrderNumber:           r.ShippingOrderNumber,
		MasterBillOfLading:            r.MasterBillOfLading,
		RetriveByZem:                  r.RetriveByZem,
		RetrievalCarrier:              r.RetrievalCarrier,
		OriginPort:                    r.OriginPort,
		DestinationPort:               r.DestinationPort,
		ShippingLine:                  r.ShippingLine,
		RetrievalDestinationPrecise:   r.RetrievalDestinationPrecise,
		AssignedByAppt:                r.AssignedByAppt,
		RetrievalDestinationArea:      r.RetrievalDestinationArea,
		ScheduledAt:                   r.ScheduledAt,
		TargetRetrievalTimestamp:      r.TargetRetrievalTimestamp,
		TargetRetrievalTimestampLower: r.TargetRetrievalTimestampLower,
		ActualRetrievalTimestamp:      r.ActualRetrievalTimestamp,
		Note:                          r.Note,
		ArriveAtDestination:           r.ArriveAtDestination,
		ArriveAt:                      r.ArriveAt,
		EmptyReturned:                 r.EmptyReturned,
		EmptyReturnedAt:               r.EmptyReturnedAt,
		TempT49LFD:                    formatDate(r.TempT49LFD),
		TempT49AvailableForPickup:     r.TempT49AvailableForPickup,
		TempT49PodArriveAt:            r.TempT49PodArriveAt,
		TempT49PodDischargeAt:         r.TempT49PodDischargeAt,
		TempT49HoldStatus:             r.TempT49HoldStatus,
	}
}

func toOffloadResponse(o *model.Offload) *dto.OffloadResponse {
	if o == nil {
		return nil
	}
	return &dto.OffloadResponse{
		OffloadID:       o.OffloadID,
		OffloadRequired: o.OffloadRequired,
		OffloadAt:       o.OffloadAt,
		TotalPallet:     o.TotalPallet,
	}
}
