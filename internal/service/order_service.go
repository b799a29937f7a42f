package service

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"dapur-manis/internal/model"
	"dapur-manis/internal/ordernumber"
	"dapur-manis/internal/ratelimit"
	"dapur-manis/internal/repository"
	"dapur-manis/internal/whatsapp"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo          repository.OrderRepository
	productRepo        repository.ProductRepository
	sessionRepo        repository.SessionRepository
	limiter            ratelimit.Limiter
	whatsapp           *whatsapp.Builder
	enforceTransitions bool
	logger             zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	sessionRepo repository.SessionRepository,
	limiter ratelimit.Limiter,
	whatsappBuilder *whatsapp.Builder,
	enforceTransitions bool,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:          orderRepo,
		productRepo:        productRepo,
		sessionRepo:        sessionRepo,
		limiter:            limiter,
		whatsapp:           whatsappBuilder,
		enforceTransitions: enforceTransitions,
		logger:             logger.With().Str("service", "order").Logger(),
	}
}

// Create validates the checkout request, mints an order number and persists
// the order with its items in one transaction.
func (s *orderService) Create(ctx context.Context, req *model.OrderRequest) (*model.OrderResponse, error) {
	if err := validateOrderRequest(req); err != nil {
		return nil, err
	}

	now := time.Now()

	if req.POSessionID != nil {
		session, err := s.sessionRepo.GetByID(ctx, *req.POSessionID)
		if err != nil {
			s.logger.Error().Err(err).Str("session_id", req.POSessionID.String()).Msg("failed to load session")
			return nil, fmt.Errorf("failed to load session: %w", err)
		}
		if session == nil {
			return nil, model.ErrSessionNotFound
		}
		if session.Status != model.SessionActive {
			s.logger.Warn().
				Str("session_id", session.ID.String()).
				Str("status", string(session.Status)).
				Msg("order rejected: session not active")
			return nil, model.ErrSessionNotActive
		}
		if !session.IsOpen(now) {
			s.logger.Warn().
				Str("session_id", session.ID.String()).
				Time("start", session.StartDate).
				Time("end", session.EndDate).
				Msg("order rejected: session period closed")
			return nil, model.ErrSessionClosed
		}
	}

	productIDs := make([]uuid.UUID, len(req.Items))
	for i, item := range req.Items {
		productIDs[i] = item.ProductID
	}

	unavailable, err := s.productRepo.FindUnavailable(ctx, productIDs)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to validate order products")
		return nil, fmt.Errorf("failed to validate order products: %w", err)
	}
	if len(unavailable) > 0 {
		missing := make([]string, len(unavailable))
		for i, id := range unavailable {
			missing[i] = id.String()
		}
		s.logger.Warn().Strs("product_ids", missing).Msg("order rejected: unavailable products")
		return nil, &model.DomainError{
			Code:    model.ErrCodeProductUnavailable,
			Message: "Some products are missing or unavailable",
			Status:  http.StatusBadRequest,
			Details: map[string][]string{"productIds": missing},
		}
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load order products")
		return nil, fmt.Errorf("failed to load order products: %w", err)
	}
	catalogue := make(map[uuid.UUID]model.Product, len(products))
	for _, p := range products {
		catalogue[p.ID] = p
	}

	// Client prices are advisory only. The catalogue price wins, and a
	// mismatch fails the checkout so the storefront can refresh its cart.
	total := decimal.Zero
	for _, item := range req.Items {
		p := catalogue[item.ProductID]
		if !item.Price.Equal(p.Price) {
			s.logger.Warn().
				Str("product_id", item.ProductID.String()).
				Str("client_price", item.Price.String()).
				Str("catalogue_price", p.Price.String()).
				Msg("order rejected: price mismatch")
			return nil, &model.DomainError{
				Code:    model.ErrCodePriceMismatch,
				Message: "Product prices have changed, refresh your cart",
				Status:  http.StatusBadRequest,
				Details: map[string]string{"productId": item.ProductID.String()},
			}
		}
		total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	committed := false
	defer func() {
		if committed || err == nil {
			return
		}
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
		}
	}()

	// The per-day counter row is locked for the rest of the transaction, so
	// concurrent checkouts cannot mint the same number.
	seq, err := s.orderRepo.NextOrderSequence(ctx, tx, ordernumber.DayKey(now))
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to advance order counter")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	orderNumber, err := ordernumber.Format(now, seq)
	if err != nil {
		s.logger.Error().Err(err).Int("sequence", seq).Msg("order sequence out of range")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	order := &model.Order{
		ID:              uuid.New(),
		OrderNumber:     orderNumber,
		CustomerName:    strings.TrimSpace(req.CustomerName),
		CustomerPhone:   strings.TrimSpace(req.CustomerPhone),
		CustomerAddress: strings.TrimSpace(req.CustomerAddress),
		Notes:           req.Notes,
		TotalAmount:     total,
		Status:          model.OrderPending,
		POSessionID:     req.POSessionID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		s.logger.Error().Err(err).Str("order_number", orderNumber).Msg("failed to create order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	items := make([]model.OrderItem, len(req.Items))
	for i, item := range req.Items {
		price := catalogue[item.ProductID].Price
		items[i] = model.OrderItem{
			ID:        uuid.New(),
			OrderID:   order.ID,
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     price,
			Subtotal:  price.Mul(decimal.NewFromInt(int64(item.Quantity))),
		}
	}

	if err = s.orderRepo.CreateOrderItems(ctx, tx, items); err != nil {
		s.logger.Error().
			Err(err).
			Str("order_number", orderNumber).
			Int("item_count", len(items)).
			Msg("failed to create order items")
		return nil, fmt.Errorf("failed to create order items: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		s.logger.Error().Err(err).Str("order_number", orderNumber).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}
	committed = true

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Str("order_number", orderNumber).
		Str("total", total.String()).
		Int("item_count", len(items)).
		Msg("order created")

	response, err := s.compose(ctx, order, items)
	if err != nil {
		return nil, err
	}
	response.WhatsAppURL = s.whatsapp.DeepLink(response)
	return response, nil
}

// GetByID retrieves an order with its item and session details.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error) {
	order, items, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}
	return s.compose(ctx, order, items)
}

// List retrieves all orders with their item and session details.
func (s *orderService) List(ctx context.Context) ([]model.OrderResponse, error) {
	orders, err := s.orderRepo.List(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list orders")
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	orderIDs := make([]uuid.UUID, len(orders))
	for i, o := range orders {
		orderIDs[i] = o.ID
	}
	itemsByOrder, err := s.orderRepo.ItemsByOrders(ctx, orderIDs)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to load order items")
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}

	responses := make([]model.OrderResponse, len(orders))
	for i := range orders {
		response, err := s.compose(ctx, &orders[i], itemsByOrder[orders[i].ID])
		if err != nil {
			return nil, err
		}
		responses[i] = *response
	}
	return responses, nil
}

// UpdateStatus moves an order along the status state machine.
func (s *orderService) UpdateStatus(ctx context.Context, id uuid.UUID, req *model.UpdateOrderStatusRequest) (*model.OrderResponse, error) {
	if req == nil || !req.Status.Valid() {
		return nil, model.NewValidationError(model.ErrCodeValidation, "status must be a valid order status")
	}

	order, _, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	if s.enforceTransitions && order.Status != req.Status && !model.CanTransition(order.Status, req.Status) {
		s.logger.Warn().
			Str("order_id", id.String()).
			Str("from", string(order.Status)).
			Str("to", string(req.Status)).
			Msg("status transition rejected")
		return nil, &model.DomainError{
			Code:    model.ErrCodeInvalidTransition,
			Message: fmt.Sprintf("Cannot change order status from %s to %s", order.Status, req.Status),
			Status:  http.StatusConflict,
			Details: map[string]string{"from": string(order.Status), "to": string(req.Status)},
		}
	}

	found, err := s.orderRepo.UpdateStatus(ctx, id, req.Status, req.Notes)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to update order status")
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	if !found {
		return nil, model.ErrOrderNotFound
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Str("from", string(order.Status)).
		Str("to", string(req.Status)).
		Msg("order status updated")

	return s.GetByID(ctx, id)
}

// Delete removes an order if its status permits deletion.
func (s *orderService) Delete(ctx context.Context, id uuid.UUID) error {
	order, _, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to get order")
		return fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return model.ErrOrderNotFound
	}
	if !order.Status.Deletable() {
		s.logger.Warn().
			Str("order_id", id.String()).
			Str("status", string(order.Status)).
			Msg("order delete blocked by status")
		return model.ErrOrderNotDeletable
	}

	found, err := s.orderRepo.Delete(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to delete order")
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if !found {
		return model.ErrOrderNotFound
	}

	s.logger.Info().Str("order_id", id.String()).Msg("order deleted")
	return nil
}

// Track retrieves the public view of an order by its order number. The format
// is checked before the rate limiter so malformed probes never consume quota,
// and before the lookup so they cannot be used to scan the order table.
func (s *orderService) Track(ctx context.Context, orderNumber, clientKey string) (*model.TrackingResponse, error) {
	if !ordernumber.IsValid(orderNumber) {
		return nil, model.ErrInvalidOrderNumber
	}

	allowed, err := s.limiter.Allow(ctx, clientKey)
	if err != nil {
		s.logger.Error().Err(err).Str("client", clientKey).Msg("rate limiter failure")
		return nil, fmt.Errorf("failed to track order: %w", err)
	}
	if !allowed {
		s.logger.Warn().Str("client", clientKey).Msg("tracking request rate limited")
		return nil, model.ErrRateLimited
	}

	order, items, err := s.orderRepo.GetByNumber(ctx, orderNumber)
	if err != nil {
		s.logger.Error().Err(err).Str("order_number", orderNumber).Msg("failed to get order by number")
		return nil, fmt.Errorf("failed to track order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	response, err := s.compose(ctx, order, items)
	if err != nil {
		return nil, err
	}

	trackingItems := make([]model.TrackingItem, len(response.Items))
	for i, item := range response.Items {
		trackingItems[i] = model.TrackingItem{
			ID:          item.ID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			Price:       item.Price,
			Subtotal:    item.Subtotal,
		}
	}

	return &model.TrackingResponse{
		ID:           response.ID,
		OrderNumber:  response.OrderNumber,
		CustomerName: response.CustomerName,
		TotalAmount:  response.TotalAmount,
		Status:       response.Status,
		Items:        trackingItems,
		POSession:    response.POSession,
		CreatedAt:    response.CreatedAt,
		UpdatedAt:    response.UpdatedAt,
	}, nil
}

// compose joins an order with its product display fields and session summary.
func (s *orderService) compose(ctx context.Context, order *model.Order, items []model.OrderItem) (*model.OrderResponse, error) {
	productIDs := make([]uuid.UUID, len(items))
	for i, item := range items {
		productIDs[i] = item.ProductID
	}

	products, err := s.productRepo.GetByIDs(ctx, productIDs)
	if err != nil {
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to load order product details")
		return nil, fmt.Errorf("failed to load order product details: %w", err)
	}
	byID := make(map[uuid.UUID]model.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	details := make([]model.OrderItemDetail, len(items))
	for i, item := range items {
		p := byID[item.ProductID]
		details[i] = model.OrderItemDetail{
			ID:              item.ID,
			ProductID:       item.ProductID,
			ProductName:     p.Name,
			ProductImage:    p.ImageURL,
			ProductCategory: p.Category,
			Quantity:        item.Quantity,
			Price:           item.Price,
			Subtotal:        item.Subtotal,
		}
	}

	var sessionSummary *model.SessionSummary
	if order.POSessionID != nil {
		session, err := s.sessionRepo.GetByID(ctx, *order.POSessionID)
		if err != nil {
			s.logger.Error().Err(err).Str("session_id", order.POSessionID.String()).Msg("failed to load order session")
			return nil, fmt.Errorf("failed to load order session: %w", err)
		}
		if session != nil {
			sessionSummary = &model.SessionSummary{ID: session.ID, Name: session.Name, Status: session.Status}
		}
	}

	return &model.OrderResponse{
		ID:              order.ID,
		OrderNumber:     order.OrderNumber,
		CustomerName:    order.CustomerName,
		CustomerPhone:   order.CustomerPhone,
		CustomerAddress: order.CustomerAddress,
		Notes:           order.Notes,
		TotalAmount:     order.TotalAmount,
		Status:          order.Status,
		POSession:       sessionSummary,
		Items:           details,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}, nil
}

// validateOrderRequest checks the checkout payload shape.
func validateOrderRequest(req *model.OrderRequest) error {
	if req == nil {
		return model.NewValidationError(model.ErrCodeValidation, "order payload is required")
	}

	fields := map[string]string{}
	if strings.TrimSpace(req.CustomerName) == "" {
		fields["customerName"] = "customer name is required"
	}
	if strings.TrimSpace(req.CustomerPhone) == "" {
		fields["customerPhone"] = "customer phone is required"
	}
	if strings.TrimSpace(req.CustomerAddress) == "" {
		fields["customerAddress"] = "customer address is required"
	}
	if len(req.Items) == 0 {
		fields["items"] = "at least one item is required"
	}
	for i, item := range req.Items {
		if item.ProductID == uuid.Nil {
			fields[fmt.Sprintf("items[%d].productId", i)] = "product ID is required"
		}
		if item.Quantity < 1 {
			fields[fmt.Sprintf("items[%d].quantity", i)] = "quantity must be at least 1"
		}
	}

	if len(fields) > 0 {
		return model.NewFieldValidationError(fields)
	}
	return nil
}
