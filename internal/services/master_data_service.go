package services

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"orderpad-service/internal/models"
	"orderpad-service/internal/orderentry"
	"orderpad-service/internal/repository"
)

// MasterDataService owns the four registries (varieties, items, customers,
// colors) and the catalog snapshot assembled from them. Writes go through
// the repositories and then replace the snapshot atomically, so readers of
// an in-flight submission keep the catalog they started with.
type MasterDataService struct {
	varieties repository.VarietyRepositoryInterface
	items     repository.ItemRepositoryInterface
	customers repository.CustomerRepositoryInterface
	colors    repository.ColorRepositoryInterface
	logger    *logrus.Logger

	catalog atomic.Pointer[orderentry.Catalog]
}

// NewMasterDataService creates a new master data service
func NewMasterDataService(
	varieties repository.VarietyRepositoryInterface,
	items repository.ItemRepositoryInterface,
	customers repository.CustomerRepositoryInterface,
	colors repository.ColorRepositoryInterface,
	logger *logrus.Logger,
) *MasterDataService {
	return &MasterDataService{
		varieties: varieties,
		items:     items,
		customers: customers,
		colors:    colors,
		logger:    logger,
	}
}

// Reload rebuilds the catalog snapshot from the item and variety registries.
// Failures leave the previous snapshot in place.
func (s *MasterDataService) Reload(ctx context.Context) error {
	varieties, err := s.varieties.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load varieties: %w", err)
	}
	items, err := s.items.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load items: %w", err)
	}

	catVarieties := make([]orderentry.Variety, 0, len(varieties))
	for _, v := range varieties {
		catVarieties = append(catVarieties, orderentry.Variety{ID: v.ID.String(), Name: v.Name})
	}
	catItems := make([]orderentry.Item, 0, len(items))
	for _, it := range items {
		catItems = append(catItems, orderentry.Item{Name: it.Name, Sizes: orderentry.SizeMap(it.Sizes)})
	}

	s.catalog.Store(orderentry.NewCatalog(catItems, catVarieties))
	s.logger.WithFields(logrus.Fields{
		"items":     len(catItems),
		"varieties": len(catVarieties),
	}).Info("Catalog snapshot reloaded")
	return nil
}

// Catalog returns the current catalog snapshot, loading it on first use.
func (s *MasterDataService) Catalog(ctx context.Context) (*orderentry.Catalog, error) {
	if c := s.catalog.Load(); c != nil {
		return c, nil
	}
	if err := s.Reload(ctx); err != nil {
		return nil, err
	}
	return s.catalog.Load(), nil
}

// reloadAfterWrite refreshes the snapshot after a registry write. A reload
// failure is logged, not returned: the write itself succeeded and the stale
// snapshot self-heals on the next reload.
func (s *MasterDataService) reloadAfterWrite(ctx context.Context) {
	if err := s.Reload(ctx); err != nil {
		s.logger.WithError(err).Warn("Failed to reload catalog after registry write")
	}
}

// ListVarieties returns all varieties
func (s *MasterDataService) ListVarieties(ctx context.Context) ([]models.Variety, error) {
	return s.varieties.List(ctx)
}

// SaveVariety creates or updates a variety
func (s *MasterDataService) SaveVariety(ctx context.Context, req *models.SaveVarietyRequest) (*models.Variety, error) {
	variety := &models.Variety{
		Name:      strings.TrimSpace(req.Name),
		ShortForm: strings.TrimSpace(req.ShortForm),
		ImageURL:  req.ImageURL,
		Sizes:     req.Sizes,
	}
	if req.ID != nil {
		existing, err := s.varieties.GetByID(ctx, *req.ID)
		if err != nil {
			return nil, err
		}
		variety.ID = existing.ID
		variety.CreatedAt = existing.CreatedAt
	}
	if variety.Name == "" {
		return nil, ErrNameRequired
	}
	if err := s.varieties.Save(ctx, variety); err != nil {
		return nil, fmt.Errorf("failed to save variety: %w", err)
	}
	s.reloadAfterWrite(ctx)
	return variety, nil
}

// DeleteVariety removes a variety. Items referencing it keep their size
// entries; the entries stop producing grid rows.
func (s *MasterDataService) DeleteVariety(ctx context.Context, id uuid.UUID) error {
	if err := s.varieties.Delete(ctx, id); err != nil {
		return err
	}
	s.reloadAfterWrite(ctx)
	return nil
}

// ListItems returns all items in grid order
func (s *MasterDataService) ListItems(ctx context.Context) ([]models.Item, error) {
	return s.items.List(ctx)
}

// SaveItem creates or updates an item
func (s *MasterDataService) SaveItem(ctx context.Context, req *models.SaveItemRequest) (*models.Item, error) {
	if len(req.Images) > models.MaxItemImages {
		return nil, fmt.Errorf("%w: at most %d images per item", ErrTooManyImages, models.MaxItemImages)
	}
	item := &models.Item{
		Name:      strings.TrimSpace(req.Name),
		ShortForm: strings.TrimSpace(req.ShortForm),
		Images:    req.Images,
		Colors:    req.Colors,
		Price:     strings.TrimSpace(req.Price),
		Comment:   req.Comment,
		Sizes:     req.Sizes,
	}
	if req.ID != nil {
		existing, err := s.items.GetByID(ctx, *req.ID)
		if err != nil {
			return nil, err
		}
		item.ID = existing.ID
		item.CreatedAt = existing.CreatedAt
	}
	if item.Name == "" {
		return nil, ErrNameRequired
	}
	if err := s.items.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to save item: %w", err)
	}
	s.reloadAfterWrite(ctx)
	return item, nil
}

// DeleteItem removes an item
func (s *MasterDataService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	if err := s.items.Delete(ctx, id); err != nil {
		return err
	}
	s.reloadAfterWrite(ctx)
	return nil
}

// ListCustomers returns all customers
func (s *MasterDataService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	return s.customers.List(ctx)
}

// SearchCustomers returns customers whose name contains the fragment
func (s *MasterDataService) SearchCustomers(ctx context.Context, query string) ([]models.Customer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.customers.List(ctx)
	}
	return s.customers.Search(ctx, query)
}

// SaveCustomer creates or updates a customer
func (s *MasterDataService) SaveCustomer(ctx context.Context, req *models.SaveCustomerRequest) (*models.Customer, error) {
	if len(req.Images) > models.MaxCustomerImages {
		return nil, fmt.Errorf("%w: at most %d images per customer", ErrTooManyImages, models.MaxCustomerImages)
	}
	customer := &models.Customer{
		Name:    strings.TrimSpace(req.Name),
		Phone:   strings.TrimSpace(req.Phone),
		Address: strings.TrimSpace(req.Address),
		Images:  req.Images,
	}
	if req.ID != nil {
		existing, err := s.customers.GetByID(ctx, *req.ID)
		if err != nil {
			return nil, err
		}
		customer.ID = existing.ID
		customer.CreatedAt = existing.CreatedAt
	}
	if customer.Name == "" || customer.Phone == "" {
		return nil, ErrNamePhoneRequired
	}
	if err := s.customers.Save(ctx, customer); err != nil {
		return nil, fmt.Errorf("failed to save customer: %w", err)
	}
	return customer, nil
}

// DeleteCustomer removes a customer
func (s *MasterDataService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	return s.customers.Delete(ctx, id)
}

// ListColors returns the color palette
func (s *MasterDataService) ListColors(ctx context.Context) ([]models.Color, error) {
	return s.colors.List(ctx)
}

// SaveColor adds a color to the palette. Names are deduplicated
// case-insensitively against the existing palette.
func (s *MasterDataService) SaveColor(ctx context.Context, name string) (*models.Color, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	existing, err := s.colors.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range existing {
		if strings.EqualFold(existing[i].Name, name) {
			return &existing[i], nil
		}
	}
	color := &models.Color{Name: name}
	if err := s.colors.Save(ctx, color); err != nil {
		if repository.ErrDuplicateColor(err) {
			// Lost an insert race on the unique name index. The palette now
			// carries the name, so hand back the stored row.
			current, listErr := s.colors.List(ctx)
			if listErr == nil {
				for i := range current {
					if strings.EqualFold(current[i].Name, name) {
						return &current[i], nil
					}
				}
			}
		}
		return nil, fmt.Errorf("failed to save color: %w", err)
	}
	return color, nil
}

// DeleteColor removes a color from the palette
func (s *MasterDataService) DeleteColor(ctx context.Context, id uuid.UUID) error {
	return s.colors.Delete(ctx, id)
}
