package payment

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/storefront/backend/internal/application/checkout"
	"github.com/storefront/backend/internal/domain/order"
	"github.com/storefront/backend/internal/domain/payment"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/domain/shared/valueobject"
)

// PaymentService handles payment bookkeeping and refunds. Each order has
// at most one payment record; initiating twice returns the existing one.
type PaymentService struct {
	paymentRepo payment.PaymentRepository
	refundRepo  payment.RefundRepository
	orderRepo   order.OrderRepository
	gateway     payment.PaymentGateway
	scope       checkout.TransactionScope
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(
	paymentRepo payment.PaymentRepository,
	refundRepo payment.RefundRepository,
	orderRepo order.OrderRepository,
	gateway payment.PaymentGateway,
	scope checkout.TransactionScope,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		refundRepo:  refundRepo,
		orderRepo:   orderRepo,
		gateway:     gateway,
		scope:       scope,
	}
}

// Initiate opens the payment for one of the caller's orders. The call is
// idempotent: an existing payment record is returned as-is instead of a
// second one being created.
func (s *PaymentService) Initiate(ctx context.Context, userID uuid.UUID, req InitiatePaymentRequest) (*InitiatePaymentResponse, error) {
	o, err := s.findOwnedOrder(ctx, userID, req.OrderNumber)
	if err != nil {
		return nil, err
	}
	if o.IsCancelled() {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot pay for a cancelled order")
	}

	existing, err := s.paymentRepo.FindByOrder(ctx, o.ID)
	if err == nil {
		return s.withGatewaySession(ctx, existing)
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	p, err := payment.NewPayment(o.ID, o.TotalMoney(), o.PaymentMethod)
	if err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Save(ctx, p); err != nil {
		// A concurrent initiate may have won the unique race on order_id
		if errors.Is(err, shared.ErrAlreadyExists) {
			if p, err = s.paymentRepo.FindByOrder(ctx, o.ID); err != nil {
				return nil, err
			}
			return s.withGatewaySession(ctx, p)
		}
		return nil, err
	}

	return s.withGatewaySession(ctx, p)
}

// withGatewaySession attaches a gateway session for online methods. Cash
// on delivery settles offline and never talks to the gateway.
func (s *PaymentService) withGatewaySession(ctx context.Context, p *payment.Payment) (*InitiatePaymentResponse, error) {
	response := InitiatePaymentResponse{Payment: ToPaymentResponse(p)}
	if p.Method == order.PaymentMethodCOD || p.Status != payment.StatusPending {
		return &response, nil
	}

	session, err := s.gateway.CreateSession(ctx, p)
	if err != nil {
		return nil, err
	}
	response.GatewayMessage = session.Message
	response.RedirectURL = session.RedirectURL
	return &response, nil
}

// Callback forwards an asynchronous gateway notification
func (s *PaymentService) Callback(ctx context.Context, payload []byte) error {
	return s.gateway.HandleCallback(ctx, payload)
}

// GetByOrder retrieves the payment for one of the caller's orders
func (s *PaymentService) GetByOrder(ctx context.Context, userID uuid.UUID, orderNumber string) (*PaymentResponse, error) {
	o, err := s.findOwnedOrder(ctx, userID, orderNumber)
	if err != nil {
		return nil, err
	}
	p, err := s.paymentRepo.FindByOrder(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	response := ToPaymentResponse(p)
	return &response, nil
}

// History retrieves the caller's payments, newest first
func (s *PaymentService) History(ctx context.Context, userID uuid.UUID) ([]PaymentResponse, error) {
	payments, err := s.paymentRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return ToPaymentResponses(payments), nil
}

// Complete marks a payment as settled and flips the order's payment
// status in the same transaction. Used by the back office and, once a
// real gateway is wired, by its callback handler.
func (s *PaymentService) Complete(ctx context.Context, paymentID, transactionID string) (*PaymentResponse, error) {
	var response PaymentResponse
	err := s.scope.Execute(ctx, func(repos checkout.TransactionalRepositories) error {
		p, err := repos.PaymentRepo().FindByPaymentID(ctx, paymentID)
		if err != nil {
			return err
		}
		if err := p.Complete(transactionID); err != nil {
			return err
		}
		if err := repos.PaymentRepo().Save(ctx, p); err != nil {
			return err
		}

		o, err := repos.OrderRepo().FindByID(ctx, p.OrderID)
		if err != nil {
			return err
		}
		o.MarkPaymentCompleted()
		if o.Status == order.StatusPending {
			if err := o.MarkProcessing(); err != nil {
				return err
			}
		}
		if err := repos.OrderRepo().Save(ctx, o); err != nil {
			return err
		}

		response = ToPaymentResponse(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// RequestRefund opens a refund against one of the caller's completed
// payments. Pending or failed payments cannot be refunded.
func (s *PaymentService) RequestRefund(ctx context.Context, userID uuid.UUID, paymentID string, req RefundRequest) (*RefundResponse, error) {
	p, err := s.paymentRepo.FindByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.findOwnedOrderByID(ctx, userID, p.OrderID); err != nil {
		return nil, err
	}

	amount := p.AmountMoney()
	if req.Amount != "" {
		if amount, err = valueobject.NewMoneyINRFromString(req.Amount); err != nil {
			return nil, shared.NewDomainError("INVALID_AMOUNT", "Refund amount is not a valid decimal")
		}
	}

	refund, err := p.RequestRefund(amount, req.Reason)
	if err != nil {
		return nil, err
	}
	if err := s.paymentRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	response := ToRefundResponse(refund)
	return &response, nil
}

// CompleteRefund pays out a refund. Completing it also flips the parent
// payment to refunded, atomically with the refund status change.
func (s *PaymentService) CompleteRefund(ctx context.Context, refundID string) (*RefundResponse, error) {
	var response RefundResponse
	err := s.scope.Execute(ctx, func(repos checkout.TransactionalRepositories) error {
		ref, err := s.refundRepo.FindByRefundID(ctx, refundID)
		if err != nil {
			return err
		}
		p, err := repos.PaymentRepo().FindByID(ctx, ref.PaymentRecordID)
		if err != nil {
			return err
		}

		var found *payment.Refund
		for idx := range p.Refunds {
			if p.Refunds[idx].RefundID == refundID {
				found = &p.Refunds[idx]
				break
			}
		}
		if found == nil {
			return shared.ErrNotFound
		}

		if err := found.Complete(); err != nil {
			return err
		}
		if err := p.MarkRefunded(); err != nil {
			return err
		}
		if err := repos.PaymentRepo().Save(ctx, p); err != nil {
			return err
		}

		response = ToRefundResponse(found)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &response, nil
}

// RejectRefund declines a pending refund request
func (s *PaymentService) RejectRefund(ctx context.Context, refundID, reason string) (*RefundResponse, error) {
	ref, err := s.refundRepo.FindByRefundID(ctx, refundID)
	if err != nil {
		return nil, err
	}
	if err := ref.Reject(reason); err != nil {
		return nil, err
	}
	if err := s.refundRepo.Save(ctx, ref); err != nil {
		return nil, err
	}
	response := ToRefundResponse(ref)
	return &response, nil
}

// ListRefunds retrieves the refunds filed against one of the caller's payments
func (s *PaymentService) ListRefunds(ctx context.Context, userID uuid.UUID, paymentID string) ([]RefundResponse, error) {
	p, err := s.paymentRepo.FindByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if _, err := s.findOwnedOrderByID(ctx, userID, p.OrderID); err != nil {
		return nil, err
	}

	refunds, err := s.refundRepo.FindByPayment(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	out := make([]RefundResponse, 0, len(refunds))
	for idx := range refunds {
		out = append(out, ToRefundResponse(&refunds[idx]))
	}
	return out, nil
}

func (s *PaymentService) findOwnedOrder(ctx context.Context, userID uuid.UUID, orderNumber string) (*order.Order, error) {
	o, err := s.orderRepo.FindByOrderNumber(ctx, orderNumber)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, shared.ErrNotFound
	}
	return o, nil
}

func (s *PaymentService) findOwnedOrderByID(ctx context.Context, userID, orderID uuid.UUID) (*order.Order, error) {
	o, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o.UserID != userID {
		return nil, shared.ErrNotFound
	}
	return o, nil
}
