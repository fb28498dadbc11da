package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"orderpad-service/internal/events"
	"orderpad-service/internal/models"
	"orderpad-service/internal/orderentry"
	"orderpad-service/internal/repository"
)

// MockOrderRepository is a mock implementation of OrderRepositoryInterface
type MockOrderRepository struct {
	mock.Mock
}

var _ repository.OrderRepositoryInterface = (*MockOrderRepository)(nil)

func (m *MockOrderRepository) CreateBatch(ctx context.Context, order *models.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) GetBatch(ctx context.Context, batchID uuid.UUID) (*models.Order, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, filter repository.ListFilter) ([]models.Order, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]models.Order), args.Get(1).(int64), args.Error(2)
}

// MockPublisher is a mock implementation of OrderEventPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishOrderSubmitted(ctx context.Context, event *events.OrderSubmittedEvent) {
	m.Called(ctx, event)
}

// MockDraftStore is a mock implementation of DraftStore
type MockDraftStore struct {
	mock.Mock
}

var _ DraftStore = (*MockDraftStore)(nil)

func (m *MockDraftStore) Save(ctx context.Context, deviceID string, draft *orderentry.Draft) {
	m.Called(ctx, deviceID, draft)
}

func (m *MockDraftStore) Clear(ctx context.Context, deviceID string) {
	m.Called(ctx, deviceID)
}

// submissionFixture wires an order service over a one-item catalog.
type submissionFixture struct {
	varietyID uuid.UUID
	orders    *MockOrderRepository
	publisher *MockPublisher
	drafts    *MockDraftStore
	service   *OrderService
}

func newSubmissionFixture(t *testing.T) *submissionFixture {
	t.Helper()
	varietyID := uuid.New()

	varieties := new(MockVarietyRepository)
	items := new(MockItemRepository)
	varieties.On("List", mock.Anything).Return([]models.Variety{
		{ID: varietyID, Name: "A"},
	}, nil)
	items.On("List", mock.Anything).Return([]models.Item{
		{Name: "Kurti", Sizes: models.SizeMap{
			{VarietyID: varietyID.String(), Sizes: []string{"S", "M", "L"}},
		}},
	}, nil)

	masterData := newTestMasterData(varieties, items, new(MockCustomerRepository), new(MockColorRepository))
	orders := new(MockOrderRepository)
	publisher := new(MockPublisher)
	drafts := new(MockDraftStore)
	service := NewOrderService(orders, masterData, drafts, publisher, testLogger())

	return &submissionFixture{
		varietyID: varietyID,
		orders:    orders,
		publisher: publisher,
		drafts:    drafts,
		service:   service,
	}
}

func (f *submissionFixture) qtyField(size string) string {
	return fmt.Sprintf("qty_0_%s_%s", f.varietyID, size)
}

func TestSubmitPersistsNormalizedRows(t *testing.T) {
	f := newSubmissionFixture(t)
	batchID := uuid.New()

	f.orders.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)
	f.publisher.On("PublishOrderSubmitted", mock.Anything, mock.Anything).Return()

	fields := map[string]string{}
	fields[f.qtyField("S")] = "3"
	fields[f.qtyField("M")] = "0"
	fields[fmt.Sprintf("color_0_%s", f.varietyID)] = "Red"
	fields[fmt.Sprintf("comment_0_%s", f.varietyID)] = "rush"

	result, err := f.service.Submit(context.Background(), &SubmitOrderRequest{
		BatchID:  &batchID,
		Customer: " Acme ",
		Date:     "2024-01-01",
		Market:   "North",
		Fields:   fields,
	})

	assert.NoError(t, err)
	assert.False(t, result.Duplicate)
	assert.Equal(t, batchID, result.Order.ID)
	assert.Equal(t, "Acme", result.Order.Customer)
	assert.Equal(t, 1, result.Order.RowCount)
	assert.Equal(t, 3, result.Order.TotalUnits)

	row := result.Order.Rows[0]
	assert.Equal(t, "Kurti", row.Item)
	assert.Equal(t, "A", row.Variety)
	assert.Equal(t, "Red", row.Color)
	assert.Equal(t, "S", row.Size)
	assert.Equal(t, 3, row.Quantity)
	assert.Equal(t, "rush", row.Comment)

	f.orders.AssertExpectations(t)
	f.publisher.AssertCalled(t, "PublishOrderSubmitted", mock.Anything, mock.Anything)
}

func TestSubmitRejectsEmptyGridBeforeAnyWrite(t *testing.T) {
	f := newSubmissionFixture(t)

	_, err := f.service.Submit(context.Background(), &SubmitOrderRequest{
		Customer: "Acme",
		Date:     "2024-01-01",
		Fields:   map[string]string{},
	})

	assert.ErrorIs(t, err, orderentry.ErrNoQuantities)
	f.orders.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestSubmitRequiresCustomerName(t *testing.T) {
	f := newSubmissionFixture(t)

	_, err := f.service.Submit(context.Background(), &SubmitOrderRequest{
		Customer: "   ",
		Date:     "2024-01-01",
		Fields:   map[string]string{f.qtyField("S"): "2"},
	})

	assert.ErrorIs(t, err, orderentry.ErrCustomerRequired)
	f.orders.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}

func TestSubmitDuplicateBatchIsIdempotent(t *testing.T) {
	f := newSubmissionFixture(t)
	batchID := uuid.New()
	stored := &models.Order{ID: batchID, Customer: "Acme", RowCount: 1, TotalUnits: 3}

	f.orders.On("CreateBatch", mock.Anything, mock.Anything).Return(repository.ErrDuplicateBatch)
	f.orders.On("GetBatch", mock.Anything, batchID).Return(stored, nil)

	result, err := f.service.Submit(context.Background(), &SubmitOrderRequest{
		BatchID:  &batchID,
		Customer: "Acme",
		Date:     "2024-01-01",
		Fields:   map[string]string{f.qtyField("S"): "3"},
	})

	assert.NoError(t, err)
	assert.True(t, result.Duplicate)
	assert.Equal(t, stored, result.Order)
	f.publisher.AssertNotCalled(t, "PublishOrderSubmitted", mock.Anything, mock.Anything)
}

func TestSubmitFailedWriteForceSavesDraft(t *testing.T) {
	f := newSubmissionFixture(t)

	f.orders.On("CreateBatch", mock.Anything, mock.Anything).Return(fmt.Errorf("connection reset by peer"))
	f.drafts.On("Save", mock.Anything, "device-7", mock.Anything).Return()

	_, err := f.service.Submit(context.Background(), &SubmitOrderRequest{
		DeviceID: "device-7",
		Customer: "Acme",
		Date:     "2024-01-01",
		Fields:   map[string]string{f.qtyField("S"): "3"},
	})

	assert.Error(t, err)
	f.drafts.AssertCalled(t, "Save", mock.Anything, "device-7", mock.MatchedBy(func(d *orderentry.Draft) bool {
		return d.Customer == "Acme" && len(d.Fields) > 0
	}))
	f.drafts.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
	f.publisher.AssertNotCalled(t, "PublishOrderSubmitted", mock.Anything, mock.Anything)
}

func TestSubmitSuccessClearsDraft(t *testing.T) {
	f := newSubmissionFixture(t)

	f.orders.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)
	f.publisher.On("PublishOrderSubmitted", mock.Anything, mock.Anything).Return()
	f.drafts.On("Clear", mock.Anything, "device-7").Return()

	_, err := f.service.Submit(context.Background(), &SubmitOrderRequest{
		DeviceID: "device-7",
		Customer: "Acme",
		Date:     "2024-01-01",
		Fields:   map[string]string{f.qtyField("S"): "3"},
	})

	assert.NoError(t, err)
	f.drafts.AssertCalled(t, "Clear", mock.Anything, "device-7")
	f.drafts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitAcceptsFlatRows(t *testing.T) {
	f := newSubmissionFixture(t)

	f.orders.On("CreateBatch", mock.Anything, mock.Anything).Return(nil)
	f.publisher.On("PublishOrderSubmitted", mock.Anything, mock.Anything).Return()

	result, err := f.service.Submit(context.Background(), &SubmitOrderRequest{
		Customer: "Acme",
		Date:     "2024-01-01",
		Rows: []orderentry.OrderRow{
			{Item: "Kurti", Variety: "A", Size: "M", Quantity: 2, Color: "Blue"},
			{Item: "Unknown", Variety: "A", Size: "M", Quantity: 5},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Order.RowCount)
	assert.Equal(t, 2, result.Order.TotalUnits)
	assert.Equal(t, "Blue", result.Order.Rows[0].Color)
}

func TestPreviewComputesSummaryWithoutPersisting(t *testing.T) {
	f := newSubmissionFixture(t)

	preview, err := f.service.Preview(context.Background(), &SubmitOrderRequest{
		Customer: "Acme",
		Date:     "2024-01-01",
		Fields: map[string]string{
			f.qtyField("S"): "2",
			f.qtyField("L"): "1",
		},
	})

	assert.NoError(t, err)
	assert.Len(t, preview.Rows, 2)
	assert.Equal(t, 3, preview.TotalUnits)
	assert.Equal(t, "Total ─ Kurti: 3", preview.SummaryLine)
	f.orders.AssertNotCalled(t, "CreateBatch", mock.Anything, mock.Anything)
}
