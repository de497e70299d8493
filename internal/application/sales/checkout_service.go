package sales

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/tiendafacil/backend/internal/domain/catalog"
	"github.com/tiendafacil/backend/internal/domain/ledger"
	"github.com/tiendafacil/backend/internal/domain/sales"
	"github.com/tiendafacil/backend/internal/domain/shared"
)

// creditSaleDescription is the ledger entry text for POS credit sales
const creditSaleDescription = "Compra a crédito (POS)"

// CheckoutState tracks where a checkout is in its lifecycle
type CheckoutState string

const (
	CheckoutStateIdle       CheckoutState = "IDLE"
	CheckoutStateValidating CheckoutState = "VALIDATING"
	CheckoutStateCommitting CheckoutState = "COMMITTING"
	CheckoutStateDone       CheckoutState = "DONE"
	CheckoutStateRejected   CheckoutState = "REJECTED"
)

// CanTransitionTo checks if the state can move to the target state
func (s CheckoutState) CanTransitionTo(target CheckoutState) bool {
	switch s {
	case CheckoutStateIdle:
		return target == CheckoutStateValidating
	case CheckoutStateValidating:
		return target == CheckoutStateCommitting || target == CheckoutStateRejected
	case CheckoutStateCommitting:
		// Commit can still fail on a concurrency conflict.
		return target == CheckoutStateDone || target == CheckoutStateRejected
	case CheckoutStateDone, CheckoutStateRejected:
		return false // Terminal states
	}
	return false
}

// CheckoutService coordinates a checkout: the one operation that mutates
// the sales journal, the product stock and a customer ledger together.
//
// Checkouts are fully serialized by a mutex spanning validation and commit,
// so two concurrent carts can never both pass the stock check and jointly
// oversell. Stock decrements are reserved before the sale is journaled;
// if a racing inventory edit or product deletion invalidates a reservation
// mid-commit, the already-applied decrements are compensated and nothing is
// journaled, so no sale is ever half applied.
type CheckoutService struct {
	mu           sync.Mutex
	productRepo  catalog.ProductRepository
	customerRepo ledger.CustomerRepository
	saleRepo     sales.SaleRepository
	logger       *zap.Logger
}

// NewCheckoutService creates a new CheckoutService
func NewCheckoutService(
	productRepo catalog.ProductRepository,
	customerRepo ledger.CustomerRepository,
	saleRepo sales.SaleRepository,
	logger *zap.Logger,
) *CheckoutService {
	return &CheckoutService{
		productRepo:  productRepo,
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
		logger:       logger,
	}
}

// Checkout converts a cart into a journaled sale plus its inventory and
// ledger side effects. Any validation failure rejects the checkout with
// zero writes to any store.
func (s *CheckoutService) Checkout(ctx context.Context, req CheckoutRequest) (*SaleResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := CheckoutStateIdle
	advance := func(next CheckoutState) {
		if !state.CanTransitionTo(next) {
			s.logger.Error("invalid checkout state transition",
				zap.String("from", string(state)),
				zap.String("to", string(next)),
			)
		}
		state = next
	}

	advance(CheckoutStateValidating)
	s.logger.Debug("checkout started",
		zap.Int("cart_lines", len(req.Items)),
		zap.String("payment_method", req.PaymentMethod.String()),
	)

	items, total, err := s.validate(ctx, req)
	if err != nil {
		advance(CheckoutStateRejected)
		s.logger.Info("checkout rejected",
			zap.String("state", string(state)),
			zap.Error(err),
		)
		return nil, err
	}

	advance(CheckoutStateCommitting)
	sale, err := s.commit(ctx, req, items, total)
	if err != nil {
		advance(CheckoutStateRejected)
		s.logger.Warn("checkout aborted during commit",
			zap.String("state", string(state)),
			zap.Error(err),
		)
		return nil, err
	}

	advance(CheckoutStateDone)
	s.logger.Info("checkout completed",
		zap.String("state", string(state)),
		zap.String("sale_id", sale.ID.String()),
		zap.String("total", sale.Total.String()),
		zap.String("payment_method", sale.PaymentMethod.String()),
	)

	response := ToSaleResponse(sale)
	return &response, nil
}

// validate checks the cart against live stock and, for credit sales, the
// customer. It also captures per-line name and price so later catalog
// edits cannot leak into the sale. No store is mutated here.
func (s *CheckoutService) validate(ctx context.Context, req CheckoutRequest) ([]sales.SaleItem, decimal.Decimal, error) {
	if len(req.Items) == 0 {
		return nil, decimal.Zero, shared.NewDomainError("EMPTY_CART", "Cart must contain at least one item")
	}
	if !req.PaymentMethod.IsValid() {
		return nil, decimal.Zero, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method must be cash or credit")
	}

	// Total requested per product, so a cart listing the same product on
	// two lines is checked against the combined quantity.
	requested := make(map[uuid.UUID]int64, len(req.Items))
	for _, line := range req.Items {
		if line.Quantity <= 0 {
			return nil, decimal.Zero, shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be positive")
		}
		requested[line.ProductID] += line.Quantity
	}

	items := make([]sales.SaleItem, 0, len(req.Items))
	total := decimal.Zero
	checked := make(map[uuid.UUID]bool, len(requested))

	for _, line := range req.Items {
		product, err := s.productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			return nil, decimal.Zero, err
		}

		if !checked[product.ID] {
			if product.Stock < requested[product.ID] {
				return nil, decimal.Zero, shared.ErrInsufficientStock
			}
			checked[product.ID] = true
		}

		item, err := sales.NewSaleItem(product.ID, product.Name, line.Quantity, product.Price)
		if err != nil {
			return nil, decimal.Zero, err
		}
		items = append(items, item)
		total = total.Add(item.Amount())
	}

	if req.PaymentMethod == sales.PaymentMethodCredit {
		if req.CustomerID == nil || *req.CustomerID == uuid.Nil {
			return nil, decimal.Zero, shared.NewDomainError("CUSTOMER_REQUIRED", "Select a customer for credit sales")
		}
		if _, err := s.customerRepo.FindByID(ctx, *req.CustomerID); err != nil {
			return nil, decimal.Zero, err
		}
		// The ledger only accepts positive amounts, so a zero-priced cart
		// cannot be sold on credit.
		if !total.IsPositive() {
			return nil, decimal.Zero, shared.NewDomainError("INVALID_TOTAL", "Credit sales require a positive total")
		}
	}

	return items, total, nil
}

// commit applies the three store mutations as one logical unit:
// stock is reserved first, then the sale is journaled, then the debt is
// posted for credit sales. After validation only a racing catalog edit can
// fail the reservation; in that case the decrements already applied are
// rolled back and the error surfaces as a concurrency conflict.
func (s *CheckoutService) commit(ctx context.Context, req CheckoutRequest, items []sales.SaleItem, total decimal.Decimal) (*sales.Sale, error) {
	applied := make([]sales.SaleItem, 0, len(items))
	for _, item := range items {
		err := s.productRepo.Update(ctx, item.ProductID, func(product *catalog.Product) error {
			if !product.HasStockFor(item.Quantity) {
				return shared.ErrConcurrencyConflict
			}
			return product.DecrementStock(item.Quantity)
		})
		if err != nil {
			s.compensate(ctx, applied)
			if errors.Is(err, shared.ErrNotFound) {
				// Product deleted between validation and commit.
				return nil, shared.ErrConcurrencyConflict
			}
			return nil, err
		}
		applied = append(applied, item)
	}

	sale, err := sales.NewSale(items, total, req.PaymentMethod, req.CustomerID)
	if err != nil {
		// Unreachable after validation; compensate to keep the stores clean.
		s.compensate(ctx, applied)
		return nil, err
	}
	if err := s.saleRepo.Append(ctx, sale); err != nil {
		s.compensate(ctx, applied)
		return nil, err
	}

	if sale.IsCredit() {
		err := s.customerRepo.Update(ctx, *sale.CustomerID, func(customer *ledger.Customer) error {
			_, err := customer.PostTransaction(sale.Total, ledger.TransactionKindDebt, creditSaleDescription)
			return err
		})
		if err != nil {
			// Customers are never deleted and the amount was validated as
			// positive, so this indicates a programming error. The sale is
			// already journaled; log loudly instead of leaving it half
			// applied silently.
			s.logger.Error("credit posting failed after sale was journaled",
				zap.String("sale_id", sale.ID.String()),
				zap.Error(err),
			)
			return nil, err
		}
	}

	return sale, nil
}

// compensate restores stock reserved by a commit that could not finish
func (s *CheckoutService) compensate(ctx context.Context, applied []sales.SaleItem) {
	for _, item := range applied {
		err := s.productRepo.Update(ctx, item.ProductID, func(product *catalog.Product) error {
			return product.SetStock(product.Stock + item.Quantity)
		})
		if err != nil {
			s.logger.Error("failed to compensate reserved stock",
				zap.String("product_id", item.ProductID.String()),
				zap.Int64("quantity", item.Quantity),
				zap.Error(err),
			)
		}
	}
}
