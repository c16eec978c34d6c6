package http

import (
	"encoding/json"
	"time"

	"marketplace/internal/core/application/usecases/queries"
	"marketplace/internal/core/domain/model/changelog"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/lifecycle"
	"marketplace/internal/core/domain/model/negotiation"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/core/domain/model/payment"
	"marketplace/internal/core/domain/model/production"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// Command results are rendered with the same read models the queries return,
// so a client sees one shape per resource.

func presentOrder(o *order.Order) queries.OrderView {
	v := queries.OrderView{
		ID:                      o.ID().Bytes(),
		Kind:                    o.Kind().String(),
		CustomerID:              o.CustomerID().Bytes(),
		ManufacturerID:          o.ManufacturerID().Bytes(),
		Status:                  o.Status().String(),
		Quantity:                o.Quantity(),
		UnitPrice:               o.UnitPrice(),
		TotalPrice:              o.TotalPrice(),
		Currency:                o.Currency().String(),
		ProductionDays:          o.ProductionDays(),
		Deadline:                o.Terms().Deadline,
		Specifications:          o.Terms().Specifications,
		Notes:                   o.Terms().Notes,
		DepositPercent:          o.DepositPercent(),
		EstimatedProductionDate: o.EstimatedProductionDate(),
		ActualProductionStart:   o.ActualProductionStart(),
		ActualProductionEnd:     o.ActualProductionEnd(),
		Version:                 o.Version(),
		CreatedAt:               o.CreatedAt(),
		UpdatedAt:               o.UpdatedAt(),
	}
	if prev := o.PreviousStatus(); prev != lifecycle.StatusUnknown {
		v.PreviousStatus = prev.String()
	}
	if co := o.CounterOffer(); co != nil {
		sentAt := co.SentAt
		v.CounterOffer = &queries.CounterOfferView{
			Price:  co.Price,
			Days:   co.Days,
			Note:   co.Note,
			Type:   string(co.Type),
			SentAt: &sentAt,
		}
	}
	return v
}

func presentNegotiation(n *negotiation.Negotiation) queries.NegotiationView {
	p := n.Proposal()
	return queries.NegotiationView{
		ID:                  n.ID().Bytes(),
		Round:               n.Round(),
		SenderID:            n.SenderID().Bytes(),
		SenderRole:          n.SenderRole().String(),
		UnitPrice:           p.UnitPrice,
		ProductionDays:      p.ProductionDays,
		Quantity:            p.Quantity,
		Message:             p.Message,
		Status:              n.Status().String(),
		PreviousOrderStatus: n.PreviousOrderStatus().String(),
		RelatedChangeLogID:  n.RelatedChangeLogID().Ptr(),
		ExpiresAt:           n.ExpiresAt(),
		RespondedAt:         n.RespondedAt(),
		RespondedBy:         n.RespondedBy().Ptr(),
		CreatedAt:           n.CreatedAt(),
	}
}

func presentChangeLog(l *changelog.ChangeLog) (queries.ChangeLogView, error) {
	previous, next := l.Change().Values()
	previousJSON, err := json.Marshal(previous)
	if err != nil {
		return queries.ChangeLogView{}, err
	}
	nextJSON, err := json.Marshal(next)
	if err != nil {
		return queries.ChangeLogView{}, err
	}
	return queries.ChangeLogView{
		ID:                   l.ID().Bytes(),
		ChangedBy:            l.ChangedBy().Bytes(),
		ChangedByRole:        l.ChangedByRole().String(),
		ChangeType:           string(l.ChangeType()),
		PreviousValues:       datatypes.JSON(previousJSON),
		NewValues:            datatypes.JSON(nextJSON),
		Reason:               l.Reason(),
		ReviewStatus:         string(l.ReviewStatus()),
		ReviewResponse:       l.ReviewResponse(),
		ReviewedAt:           l.ReviewedAt(),
		ReviewedBy:           l.ReviewedBy().Ptr(),
		NegotiationTriggered: l.NegotiationTriggered(),
		NegotiationID:        l.NegotiationID().Ptr(),
		CreatedAt:            l.CreatedAt(),
	}, nil
}

func presentTracking(t *production.Tracking) queries.TrackingView {
	v := queries.TrackingView{
		ID:                  t.ID().Bytes(),
		OrderID:             t.OrderID().Bytes(),
		CurrentStage:        t.CurrentStage().String(),
		OverallStatus:       string(t.OverallStatus()),
		Progress:            t.Progress(),
		HoldReason:          t.HoldReason(),
		PlanStatus:          string(t.PlanStatus()),
		PlanNote:            t.PlanNote(),
		PlanRejectionReason: t.PlanRejectionReason(),
		RevisionCount:       t.RevisionCount(),
		ActualStartDate:     t.ActualStartDate(),
		ActualEndDate:       t.ActualEndDate(),
		UpdatedAt:           t.UpdatedAt(),
	}
	updates := t.StageUpdates()
	v.Stages = make([]queries.StageUpdateView, 0, len(updates))
	for _, u := range updates {
		v.Stages = append(v.Stages, queries.StageUpdateView{
			ID:              u.ID().Bytes(),
			Stage:           u.Stage().String(),
			Status:          string(u.Status()),
			IsRevision:      u.IsRevision(),
			DelayReason:     u.DelayReason(),
			ExtraDays:       u.ExtraDays(),
			Notes:           u.Notes(),
			Photos:          pq.StringArray(u.Photos()),
			ActualStartDate: u.ActualStartDate(),
			ActualEndDate:   u.ActualEndDate(),
			UpdatedBy:       u.UpdatedBy().Ptr(),
		})
	}
	return v
}

func presentPayment(p *payment.Payment) queries.PaymentView {
	return queries.PaymentView{
		ID:                p.ID().Bytes(),
		Type:              string(p.Type()),
		Status:            string(p.Status()),
		Method:            string(p.Method()),
		Amount:            p.Amount(),
		Percentage:        p.Percentage(),
		Currency:          p.Currency().String(),
		ReceiptURL:        p.ReceiptURL(),
		ReceiptUploadedAt: p.ReceiptUploadedAt(),
		ConfirmedAt:       p.ConfirmedAt(),
		ConfirmedBy:       p.ConfirmedBy().Ptr(),
		RejectionReason:   p.RejectionReason(),
		DueDate:           p.DueDate(),
		PaidDate:          p.PaidDate(),
	}
}

// EventView is one journaled domain event.
type EventView struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	AggregateID uuid.UUID         `json:"aggregateId"`
	OccurredAt  time.Time         `json:"occurredAt"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

func presentEvents(events []kernel.Event) []EventView {
	out := make([]EventView, 0, len(events))
	for _, e := range events {
		out = append(out, EventView{
			ID:          e.ID.Bytes(),
			Name:        e.Name,
			AggregateID: e.AggregateID.Bytes(),
			OccurredAt:  e.OccurredAt,
			Attributes:  e.Attributes,
		})
	}
	return out
}
