package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"autokit/internal/model"
	"autokit/internal/repository"

	"github.com/rs/zerolog"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) OrderService {
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

// Create runs the full order pipeline: normalize the cart against the
// catalogue, compute totals, persist. The operation is all-or-nothing per
// request; normalization failures occur strictly before the single write, so
// there is never a partially persisted order.
func (s *orderService) Create(ctx context.Context, req *model.OrderRequest) (*model.OrderReceipt, error) {
	if req == nil {
		return nil, fmt.Errorf("order request is nil")
	}

	// Empty cart fails before any store lookup.
	if len(req.Items) == 0 {
		s.logger.Warn().Msg("rejected order with empty cart")
		return nil, model.ErrEmptyCart
	}

	lines, err := s.normalize(ctx, req.Items)
	if err != nil {
		return nil, err
	}

	subtotal, total := computeTotals(lines, req.Shipping)

	order := &model.Order{
		Items:     lines,
		Customer:  req.Customer,
		Subtotal:  subtotal,
		Shipping:  req.Shipping,
		Total:     total,
		Status:    model.OrderStatusPending,
		CreatedAt: time.Now().UTC(),
	}

	orderID, err := s.orderRepo.Insert(ctx, order)
	if err != nil {
		s.logger.Error().Err(err).Int("item_count", len(lines)).Msg("failed to persist order")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Info().
		Str("order_id", orderID).
		Int("item_count", len(lines)).
		Float64("total", total).
		Msg("order created")

	return &model.OrderReceipt{
		OrderID: orderID,
		Total:   total,
		Status:  model.OrderStatusPending,
	}, nil
}

// normalize resolves every cart item against the catalogue, in input order,
// and builds price snapshots from the authoritative product records. Client
// supplied prices are never trusted. Repeated product identifiers produce
// repeated lines; nothing is merged or reordered. Any unresolvable
// identifier aborts the whole cart.
func (s *orderService) normalize(ctx context.Context, items []model.CartItem) ([]model.OrderLine, error) {
	lines := make([]model.OrderLine, 0, len(items))
	for _, item := range items {
		product, err := s.productRepo.FindByID(ctx, item.ProductID)
		if err != nil {
			s.logger.Error().Err(err).Str("product_id", item.ProductID).Msg("failed to resolve product")
			return nil, fmt.Errorf("failed to resolve product %s: %w", item.ProductID, err)
		}
		if product == nil {
			s.logger.Warn().Str("product_id", item.ProductID).Msg("cart references unknown product")
			return nil, &model.InvalidProductError{ProductID: item.ProductID}
		}

		lines = append(lines, model.OrderLine{
			ProductID: item.ProductID,
			Title:     product.Title,
			Price:     product.Price,
			Quantity:  item.Quantity,
			Image:     product.Image,
		})
	}
	return lines, nil
}

// computeTotals aggregates snapshot lines plus shipping. The subtotal is the
// sum of price times quantity rounded to 2 decimal places; the total is the
// rounded subtotal plus shipping, rounded again. Shipping is taken as given,
// with absent values decoding to 0.
func computeTotals(lines []model.OrderLine, shipping float64) (subtotal, total float64) {
	var raw float64
	for _, line := range lines {
		raw += line.Price * float64(line.Quantity)
	}
	subtotal = round2(raw)
	total = round2(subtotal + shipping)
	return subtotal, total
}

// round2 rounds to 2 decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
