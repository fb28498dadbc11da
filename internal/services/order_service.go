package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"orderpad-service/internal/events"
	"orderpad-service/internal/models"
	"orderpad-service/internal/orderentry"
	"orderpad-service/internal/repository"
)

// OrderEventPublisher publishes order lifecycle events. Implementations must
// not block the caller; publishing is fire-and-forget.
type OrderEventPublisher interface {
	PublishOrderSubmitted(ctx context.Context, event *events.OrderSubmittedEvent)
}

// DraftStore is the slice of draft persistence Submit needs: force-saving
// the caller's grid when a write fails and clearing it once one succeeds.
type DraftStore interface {
	Save(ctx context.Context, deviceID string, draft *orderentry.Draft)
	Clear(ctx context.Context, deviceID string)
}

var _ DraftStore = (*DraftService)(nil)

// SubmitOrderRequest is the submission payload. Clients send either flat
// rows or the raw grid document (the fields map drafts are saved as); the
// server normalizes either form the same way.
type SubmitOrderRequest struct {
	BatchID  *uuid.UUID `json:"batchId"`
	DeviceID string     `json:"deviceId"`
	Customer string     `json:"customer"`
	Date     string     `json:"date"`
	Market   string     `json:"market"`

	Rows   []orderentry.OrderRow `json:"rows"`
	Fields map[string]string     `json:"fields"`
}

// OrderPreview is the confirmation summary computed without persisting.
type OrderPreview struct {
	Rows        []orderentry.OrderRow    `json:"rows"`
	Summary     []orderentry.ItemSummary `json:"summary"`
	SummaryLine string                   `json:"summaryLine"`
	TotalUnits  int                      `json:"totalUnits"`
}

// SubmitResult is the outcome of a submission.
type SubmitResult struct {
	Order     *models.Order `json:"order"`
	Duplicate bool          `json:"duplicate"` // batch id was already stored
}

// OrderService validates, normalizes and persists order submissions.
type OrderService struct {
	orders     repository.OrderRepositoryInterface
	masterData *MasterDataService
	drafts     DraftStore
	publisher  OrderEventPublisher
	logger     *logrus.Logger
}

// NewOrderService creates a new order service. drafts and publisher may be
// nil when the corresponding backend is not configured.
func NewOrderService(
	orders repository.OrderRepositoryInterface,
	masterData *MasterDataService,
	drafts DraftStore,
	publisher OrderEventPublisher,
	logger *logrus.Logger,
) *OrderService {
	return &OrderService{
		orders:     orders,
		masterData: masterData,
		drafts:     drafts,
		publisher:  publisher,
		logger:     logger,
	}
}

// normalize turns a submission request into validated rows plus the grid
// they came from. Flat rows are replayed through the grid so both request
// forms share one normalization and validation path.
func (s *OrderService) normalize(ctx context.Context, req *SubmitOrderRequest) (*orderentry.Grid, orderentry.Header, []orderentry.OrderRow, error) {
	catalog, err := s.masterData.Catalog(ctx)
	if err != nil {
		return nil, orderentry.Header{}, nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	grid := orderentry.NewGrid(catalog)
	header := orderentry.Header{Customer: req.Customer, Date: req.Date, Market: req.Market}

	if len(req.Fields) > 0 {
		header = grid.ApplyDraft(&orderentry.Draft{
			Customer: req.Customer,
			Date:     req.Date,
			Market:   req.Market,
			Fields:   req.Fields,
		})
	} else {
		s.replayRows(grid, catalog, req.Rows)
	}

	rows := grid.Normalize(header)
	if err := orderentry.ValidateSubmission(header, rows); err != nil {
		return nil, header, nil, err
	}
	return grid, header, rows, nil
}

// replayRows loads flat submission rows into the grid stores. Rows naming
// items or varieties the catalog does not carry are skipped, mirroring how
// dangling ids behave everywhere else.
func (s *OrderService) replayRows(grid *orderentry.Grid, catalog *orderentry.Catalog, rows []orderentry.OrderRow) {
	for _, row := range rows {
		for i := 0; i < catalog.Len(); i++ {
			if catalog.Item(i).Name != row.Item {
				continue
			}
			for _, gridRow := range catalog.Rows(i) {
				if gridRow.Variety.Name != row.Variety {
					continue
				}
				qty := grid.Quantities.Get(i, gridRow.Variety.ID, row.Size) + row.Quantity
				grid.Quantities.Set(i, gridRow.Variety.ID, row.Size, fmt.Sprintf("%d", qty))
				if row.Color != "" {
					grid.Notes.SetColor(i, gridRow.Variety.ID, row.Color)
				}
				if row.Comment != "" {
					grid.Notes.SetComment(i, gridRow.Variety.ID, row.Comment)
				}
			}
			break
		}
	}
}

// Preview computes the confirmation summary without writing anything.
func (s *OrderService) Preview(ctx context.Context, req *SubmitOrderRequest) (*OrderPreview, error) {
	grid, _, rows, err := s.normalize(ctx, req)
	if err != nil {
		return nil, err
	}
	return &OrderPreview{
		Rows:        rows,
		Summary:     grid.Summary(),
		SummaryLine: grid.SummaryLine(),
		TotalUnits:  grid.TotalUnits(),
	}, nil
}

// Submit validates and persists a submission as one batch, publishes the
// order.submitted event, and clears the caller's draft. Resubmitting a batch
// id that was already stored returns the stored batch with Duplicate set.
func (s *OrderService) Submit(ctx context.Context, req *SubmitOrderRequest) (*SubmitResult, error) {
	grid, header, rows, err := s.normalize(ctx, req)
	if err != nil {
		return nil, err
	}

	batchID := uuid.New()
	if req.BatchID != nil {
		batchID = *req.BatchID
	}

	order := models.NewOrder(batchID, header, rows)
	if err := s.orders.CreateBatch(ctx, order); err != nil {
		if errors.Is(err, repository.ErrDuplicateBatch) {
			existing, getErr := s.orders.GetBatch(ctx, batchID)
			if getErr != nil {
				return nil, getErr
			}
			return &SubmitResult{Order: existing, Duplicate: true}, nil
		}
		// The caller's work must survive a failed write: force-save the
		// draft before reporting the error.
		s.forceSaveDraft(ctx, req.DeviceID, grid, header)
		return nil, fmt.Errorf("failed to store order batch: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"batch_id":    order.ID,
		"customer":    order.Customer,
		"row_count":   order.RowCount,
		"total_units": order.TotalUnits,
	}).Info("Order batch submitted")

	if s.publisher != nil {
		s.publisher.PublishOrderSubmitted(ctx, events.NewOrderSubmittedEvent(order, grid.Summary()))
	}
	if s.drafts != nil && req.DeviceID != "" {
		s.drafts.Clear(ctx, req.DeviceID)
	}

	return &SubmitResult{Order: order}, nil
}

func (s *OrderService) forceSaveDraft(ctx context.Context, deviceID string, grid *orderentry.Grid, header orderentry.Header) {
	if s.drafts == nil || deviceID == "" {
		return
	}
	s.drafts.Save(ctx, deviceID, grid.SnapshotDraft(header))
}

// GetBatch retrieves a stored batch with its rows.
func (s *OrderService) GetBatch(ctx context.Context, batchID uuid.UUID) (*models.Order, error) {
	return s.orders.GetBatch(ctx, batchID)
}

// ListBatches retrieves stored batches with filters and pagination.
func (s *OrderService) ListBatches(ctx context.Context, filter repository.ListFilter) ([]models.Order, int64, error) {
	return s.orders.List(ctx, filter)
}
