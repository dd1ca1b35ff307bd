package food

import (
	"context"
	"errors"
	"fmt"
	"pantrypal/domain"
	"pantrypal/entities"
	"pantrypal/internal/utils/storage"
	"pantrypal/pkg/expiry"
	"pantrypal/pkg/sweep"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const recentItemsLimit = 5

type (
	FoodService interface {
		AddFoodItem(ctx context.Context, req domain.AddFoodItemRequest) (domain.FoodItemResponse, error)
		UpdateFoodItem(ctx context.Context, id string, req domain.UpdateFoodItemRequest) (domain.FoodItemResponse, error)
		DeleteFoodItem(ctx context.Context, id string) error
		GetFoodItemByID(ctx context.Context, id string) (domain.FoodItemResponse, error)
		GetInventory(ctx context.Context, query domain.ListFoodItemsQuery) (domain.InventoryResponse, error)
		GetDashboardStats(ctx context.Context) (domain.DashboardStatsResponse, error)
		UploadFoodImage(ctx context.Context, req domain.UploadFoodImageRequest) (domain.FoodItemResponse, error)
	}

	// ReminderSync keeps reminders in step with inventory mutations.
	ReminderSync interface {
		ItemChanged(ctx context.Context) (sweep.Result, error)
		ItemDeleted(ctx context.Context, itemID string) error
	}

	foodService struct {
		foodRepository FoodRepository
		reminders      ReminderSync
		s3             storage.AwsS3
		loc            *time.Location
		logger         *zap.Logger
		now            func() time.Time
	}
)

// NewFoodService wires the inventory service. s3 may be nil when photo upload
// is not configured.
func NewFoodService(
	foodRepository FoodRepository,
	reminders ReminderSync,
	s3 storage.AwsS3,
	loc *time.Location,
	logger *zap.Logger,
) FoodService {
	return &foodService{
		foodRepository: foodRepository,
		reminders:      reminders,
		s3:             s3,
		loc:            loc,
		logger:         logger,
		now:            time.Now,
	}
}

func (s *foodService) today() time.Time {
	return s.now().In(s.loc)
}

func (s *foodService) AddFoodItem(ctx context.Context, req domain.AddFoodItemRequest) (domain.FoodItemResponse, error) {
	fields, err := s.parseFields(req.Name, req.Quantity, req.ExpirationDate, req.StorageLocation, nil)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}

	foodItem := &entities.FoodItem{
		ID:              uuid.New(),
		Name:            fields.name,
		Quantity:        fields.quantity,
		ExpirationDate:  fields.expirationDate,
		StorageLocation: fields.location,
	}

	if err := s.foodRepository.AddFoodItem(ctx, foodItem); err != nil {
		return domain.FoodItemResponse{}, err
	}

	s.syncReminders(ctx, foodItem.ID.String())

	return s.toResponse(*foodItem), nil
}

func (s *foodService) UpdateFoodItem(ctx context.Context, id string, req domain.UpdateFoodItemRequest) (domain.FoodItemResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.FoodItemResponse{}, domain.ErrFoodItemNotFound
	}

	foodItem, err := s.foodRepository.GetFoodItemByID(ctx, id)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}

	fields, err := s.parseFields(req.Name, req.Quantity, req.ExpirationDate, req.StorageLocation, &foodItem.ExpirationDate)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}

	foodItem.Name = fields.name
	foodItem.Quantity = fields.quantity
	foodItem.ExpirationDate = fields.expirationDate
	foodItem.StorageLocation = fields.location

	if err := s.foodRepository.UpdateFoodItem(ctx, foodItem); err != nil {
		return domain.FoodItemResponse{}, err
	}

	s.syncReminders(ctx, id)

	return s.toResponse(*foodItem), nil
}

func (s *foodService) DeleteFoodItem(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return domain.ErrFoodItemNotFound
	}

	foodItem, err := s.foodRepository.GetFoodItemByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.foodRepository.DeleteFoodItem(ctx, id); err != nil {
		return err
	}

	// The next sweep cancels a reminder whose item is gone, so a failed
	// cancel here is only logged.
	if err := s.reminders.ItemDeleted(ctx, id); err != nil {
		s.logger.Warn("reminder not cancelled for deleted item", zap.String("item_id", id), zap.Error(err))
	}

	if foodItem.ImageURL != "" && s.s3 != nil {
		if key := s.s3.GetObjectKeyFromLink(foodItem.ImageURL); key != "" {
			if err := s.s3.DeleteFile(ctx, key); err != nil {
				s.logger.Warn("failed to delete food image", zap.String("item_id", id), zap.Error(err))
			}
		}
	}

	return nil
}

func (s *foodService) GetFoodItemByID(ctx context.Context, id string) (domain.FoodItemResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.FoodItemResponse{}, domain.ErrFoodItemNotFound
	}

	foodItem, err := s.foodRepository.GetFoodItemByID(ctx, id)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}

	return s.toResponse(*foodItem), nil
}

// GetInventory groups items by storage location. Each group is ordered by
// expiration date, soonest first.
func (s *foodService) GetInventory(ctx context.Context, query domain.ListFoodItemsQuery) (domain.InventoryResponse, error) {
	var urgency expiry.Urgency
	if query.Urgency != "" {
		u, ok := expiry.ParseUrgency(query.Urgency)
		if !ok {
			return domain.InventoryResponse{}, domain.NewValidationError(domain.MessageInvalidUrgencyQuery)
		}
		urgency = u
	}

	locations := entities.StorageLocations
	var (
		items []entities.FoodItem
		err   error
	)
	if query.Location != "" {
		location := entities.StorageLocation(query.Location)
		if !location.Valid() {
			return domain.InventoryResponse{}, domain.NewValidationError(domain.MessageInvalidLocation)
		}
		locations = []entities.StorageLocation{location}
		items, err = s.foodRepository.ListItemsByLocation(ctx, location)
	} else {
		items, err = s.foodRepository.ListItems(ctx)
	}
	if err != nil {
		return domain.InventoryResponse{}, err
	}

	today := s.today()
	groups := make(map[entities.StorageLocation][]domain.FoodItemResponse, len(locations))
	total := 0
	for _, item := range sortByExpiry(items) {
		if urgency != "" && expiry.Classify(item.ExpirationDate, today, s.loc) != urgency {
			continue
		}
		groups[item.StorageLocation] = append(groups[item.StorageLocation], s.responseAt(item, today))
		total++
	}

	res := domain.InventoryResponse{Total: total}
	for _, location := range locations {
		entries := groups[location]
		if entries == nil {
			entries = []domain.FoodItemResponse{}
		}
		res.Locations = append(res.Locations, domain.LocationGroup{
			Location: string(location),
			Items:    entries,
		})
	}
	return res, nil
}

func (s *foodService) GetDashboardStats(ctx context.Context) (domain.DashboardStatsResponse, error) {
	items, err := s.foodRepository.ListItems(ctx)
	if err != nil {
		return domain.DashboardStatsResponse{}, err
	}

	recent, err := s.foodRepository.RecentItems(ctx, recentItemsLimit)
	if err != nil {
		return domain.DashboardStatsResponse{}, err
	}

	today := s.today()
	summary := expiry.Summarize(items, today, s.loc)

	res := domain.DashboardStatsResponse{
		TotalItems:        summary.Total,
		ExpiringSoonItems: summary.ExpiringSoon,
		StorageAreas:      summary.StorageAreas,
		ByUrgency:         make(map[string]int, len(summary.ByUrgency)),
		ByLocation:        make(map[string]int, len(summary.ByLocation)),
		RecentItems:       make([]domain.FoodItemResponse, 0, len(recent)),
	}
	for u, n := range summary.ByUrgency {
		res.ByUrgency[string(u)] = n
	}
	for l, n := range summary.ByLocation {
		res.ByLocation[string(l)] = n
	}
	for _, item := range recent {
		res.RecentItems = append(res.RecentItems, s.responseAt(item, today))
	}

	return res, nil
}

func (s *foodService) UploadFoodImage(ctx context.Context, req domain.UploadFoodImageRequest) (domain.FoodItemResponse, error) {
	if s.s3 == nil {
		return domain.FoodItemResponse{}, domain.ErrImageUploadOff
	}

	foodItem, err := s.foodRepository.GetFoodItemByID(ctx, req.FoodItemID)
	if err != nil {
		return domain.FoodItemResponse{}, err
	}

	fileName := fmt.Sprintf("food-item-%s", foodItem.ID.String())
	var objectKey string
	existingKey := ""
	if foodItem.ImageURL != "" {
		existingKey = s.s3.GetObjectKeyFromLink(foodItem.ImageURL)
	}
	if existingKey != "" {
		objectKey, err = s.s3.UpdateFile(ctx, existingKey, req.Image, storage.AllowImage...)
	} else {
		objectKey, err = s.s3.UploadFile(ctx, fileName, req.Image, "food-items", storage.AllowImage...)
	}
	if err != nil {
		if errors.Is(err, storage.ErrFileNotAllowed) {
			return domain.FoodItemResponse{}, domain.ErrInvalidImageFormat
		}
		return domain.FoodItemResponse{}, domain.NewNetworkError("upload food image", err)
	}

	foodItem.ImageURL = s.s3.GetPublicLinkKey(objectKey)
	if err := s.foodRepository.UpdateFoodItem(ctx, foodItem); err != nil {
		return domain.FoodItemResponse{}, err
	}

	return s.toResponse(*foodItem), nil
}

// syncReminders runs after a successful write. The item is already saved,
// so a sweep failure does not fail the request.
func (s *foodService) syncReminders(ctx context.Context, itemID string) {
	res, err := s.reminders.ItemChanged(ctx)
	if err != nil {
		s.logger.Warn("reminder sync failed", zap.String("item_id", itemID), zap.Error(err))
		return
	}
	if len(res.Failures) > 0 {
		s.logger.Warn("reminder sync incomplete", zap.String("item_id", itemID), zap.Strings("failures", res.Failures))
	}
}

type itemFields struct {
	name           string
	quantity       string
	expirationDate time.Time
	location       entities.StorageLocation
}

// parseFields validates user input before anything is written. An update may
// keep an item's current date even after it has passed.
func (s *foodService) parseFields(name, quantity, expirationDate, location string, current *time.Time) (itemFields, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return itemFields{}, domain.NewValidationError(domain.MessageEnterItemName)
	}

	quantity = strings.TrimSpace(quantity)
	if quantity == "" {
		return itemFields{}, domain.NewValidationError(domain.MessageEnterQuantity)
	}

	date, err := time.ParseInLocation(domain.DateLayout, strings.TrimSpace(expirationDate), s.loc)
	if err != nil {
		return itemFields{}, domain.NewValidationError(domain.MessageInvalidExpiryDate)
	}
	unchanged := current != nil && expiry.ExpirationDay(*current).Equal(expiry.ExpirationDay(date))
	if !unchanged && expiry.DaysUntil(date, s.today(), s.loc) < 0 {
		return itemFields{}, domain.NewValidationError(domain.MessageExpiryDateInPast)
	}

	loc := entities.StorageLocation(location)
	if !loc.Valid() {
		return itemFields{}, domain.NewValidationError(domain.MessageInvalidLocation)
	}

	return itemFields{
		name:           name,
		quantity:       quantity,
		expirationDate: date,
		location:       loc,
	}, nil
}

func (s *foodService) toResponse(item entities.FoodItem) domain.FoodItemResponse {
	return s.responseAt(item, s.today())
}

func (s *foodService) responseAt(item entities.FoodItem, today time.Time) domain.FoodItemResponse {
	days := expiry.DaysUntil(item.ExpirationDate, today, s.loc)
	return domain.FoodItemResponse{
		ID:              item.ID.String(),
		Name:            item.Name,
		Quantity:        item.Quantity,
		ExpirationDate:  item.ExpirationDate.Format(domain.DateLayout),
		StorageLocation: string(item.StorageLocation),
		ImageURL:        item.ImageURL,
		DaysUntilExpiry: days,
		Urgency:         string(expiry.ClassifyDays(days)),
		ExpiryLabel:     expiry.Label(days),
		CreatedAt:       item.CreatedAt,
	}
}

func sortByExpiry(items []entities.FoodItem) []entities.FoodItem {
	sorted := make([]entities.FoodItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return expiry.ExpirationDay(sorted[i].ExpirationDate).Before(expiry.ExpirationDay(sorted[j].ExpirationDate))
	})
	return sorted
}
