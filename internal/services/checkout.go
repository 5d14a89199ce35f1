package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/Renal37/smm-storefront/internal/logger"
	"github.com/Renal37/smm-storefront/internal/models"
	"github.com/Renal37/smm-storefront/internal/pricing"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

var (
	ErrLinkRequired         = errors.New("link is required")
	ErrCustomerNameRequired = errors.New("customer name is required")
	ErrReceiptRequired      = errors.New("receipt is required for this payment method")
	ErrInvalidPaymentMethod = errors.New("unsupported payment method")
	ErrQuantityFixed        = errors.New("quantity of this service is fixed")
	ErrSubmitDisabled       = errors.New("order cannot be submitted yet")
	ErrSubmitInProgress     = errors.New("order submission is in progress")
	ErrAlreadySubmitted     = errors.New("order has already been submitted")
	ErrCheckoutClosed       = errors.New("checkout is closed")
)

// DefaultDismissDelay leaves the success state on screen before the dialog goes away.
const DefaultDismissDelay = 2000 * time.Millisecond

const (
	uploadFailedMessage = "Attention: Erreur lors de l'envoi de la photo. La commande sera créée sans photo."
	orderFailedMessage  = "Une erreur est survenue lors du traitement de la commande."
)

type proofUploader interface {
	UploadProof(ctx context.Context, session models.Session, receipt models.Receipt) (string, error)
}

type orderCreator interface {
	CreateOrder(ctx context.Context, session models.Session, order models.OrderRequest) error
}

type jobScheduler interface {
	Enqueue(job Job) error

	ScheduleJob(job Job, delay time.Duration)
}

// CheckoutOptions wires a checkout to its collaborators.
type CheckoutOptions struct {
	Uploader     proofUploader
	Creator      orderCreator
	Jobs         jobScheduler
	OnRefresh    func(ctx context.Context, session models.Session)
	OnDismiss    func(id string)
	DismissDelay time.Duration
}

// Checkout is one open order dialog: the draft, its pricing and the submission state machine
// idle -> submitting -> success, with submitting -> idle on failure.
// The dialog owns a context that Close cancels; results that arrive after Close are dropped.
type Checkout struct {
	id       string
	service  models.Service
	owner    string
	currency pricing.Currency
	rate     pricing.Rate
	opts     CheckoutOptions

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	draft   models.OrderDraft
	state   models.CheckoutState
	closed  bool
	notices []models.Notice
	result  *models.OrderResult
}

func NewCheckout(id string, service models.Service, session models.Session, currency pricing.Currency, opts CheckoutOptions) *Checkout {
	if opts.DismissDelay <= 0 {
		opts.DismissDelay = DefaultDismissDelay
	}

	quantity := pricing.ClampQuantity(pricing.DefaultQuantity, service.Min, service.Max)
	if service.FixedQuantity() {
		quantity = service.Min
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Checkout{
		id:       id,
		service:  service,
		owner:    session.Subject,
		currency: currency,
		rate:     pricing.NormalizeRate(service.Price, currency),
		opts:     opts,
		ctx:      ctx,
		cancel:   cancel,
		state:    models.StateIdle,
		draft: models.OrderDraft{
			Quantity:      quantity,
			CustomerName:  session.Name,
			PaymentMethod: models.PaymentCard,
		},
	}
}

func (c *Checkout) ID() string {
	return c.id
}

func (c *Checkout) State() models.CheckoutState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// Draft returns a copy of the current draft.
func (c *Checkout) Draft() models.OrderDraft {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.draft
}

// Apply writes user input into the draft. Quantity is clamped to the service bounds.
func (c *Checkout) Apply(patch models.DraftPatch) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.editableLocked(); err != nil {
		return err
	}

	next := c.draft

	if patch.Quantity != nil {
		if c.service.FixedQuantity() {
			return ErrQuantityFixed
		}
		next.Quantity = pricing.ClampQuantity(pricing.ParseQuantity(patch.Quantity.String()), c.service.Min, c.service.Max)
	}

	if patch.PaymentMethod != nil {
		if !patch.PaymentMethod.Valid() {
			return ErrInvalidPaymentMethod
		}
		next.PaymentMethod = *patch.PaymentMethod
	}

	if patch.Link != nil {
		next.Link = *patch.Link
	}

	if patch.CustomerName != nil {
		next.CustomerName = *patch.CustomerName
	}

	if patch.ResalePrice != nil {
		next.ResalePrice = patch.ResalePrice.String()
	}

	c.draft = next

	return nil
}

func (c *Checkout) AttachReceipt(receipt models.Receipt) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.editableLocked(); err != nil {
		return err
	}

	if len(receipt.Data) == 0 {
		c.draft.Receipt = nil
		return nil
	}

	c.draft.Receipt = &receipt

	return nil
}

// Validate reports every precondition that keeps the submit action disabled.
func (c *Checkout) Validate() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	return validateDraft(c.draft)
}

func (c *Checkout) canSubmit() bool {
	return c.Validate() == nil
}

func (c *Checkout) totals() pricing.Totals {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.totalsLocked()
}

func (c *Checkout) View() models.CheckoutView {
	c.mu.Lock()
	defer c.mu.Unlock()

	totals := c.totalsLocked()
	violations := violationMessages(validateDraft(c.draft))

	view := models.CheckoutView{
		ID:               c.id,
		ServiceID:        c.service.ID,
		ServiceTitle:     c.service.Title,
		State:            c.state,
		Quantity:         c.draft.Quantity,
		QuantityEditable: !c.service.FixedQuantity(),
		Min:              c.service.Min,
		Max:              c.service.Max,
		Link:             c.draft.Link,
		CustomerName:     c.draft.CustomerName,
		ResalePrice:      c.draft.ResalePrice,
		PaymentMethod:    c.draft.PaymentMethod,
		Currency:         c.currency.Code,
		Rate:             c.rate.Value,
		DisplayRate:      c.rate.Display,
		TotalCost:        totals.TotalCost,
		Profit:           totals.Profit,
		CanSubmit:        c.state == models.StateIdle && len(violations) == 0,
		Violations:       violations,
		Notices:          append([]models.Notice(nil), c.notices...),
		Result:           c.result,
	}

	if c.draft.Receipt != nil {
		view.ReceiptName = c.draft.Receipt.FileName
	}

	return view
}

// Submit uploads the receipt, if any, and creates the order.
// A failed upload is reported as a notice and the order goes out without proof.
// A failed creation returns the dialog to idle with the draft untouched.
func (c *Checkout) Submit(ctx context.Context, session models.Session) (models.OrderResult, error) {
	c.mu.Lock()

	if err := c.editableLocked(); err != nil {
		c.mu.Unlock()
		return models.OrderResult{}, err
	}

	if err := validateDraft(c.draft); err != nil {
		c.mu.Unlock()
		return models.OrderResult{}, errors.Join(ErrSubmitDisabled, err)
	}

	c.state = models.StateSubmitting
	c.notices = nil
	draft := c.draft
	totals := c.totalsLocked()

	c.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(c.ctx, cancel)
	defer stop()

	log := logger.Log.With(zap.String("checkoutID", c.id), zap.Int("serviceID", c.service.ID))

	var notices []models.Notice
	proofURL := ""

	if draft.Receipt != nil {
		url, err := c.opts.Uploader.UploadProof(runCtx, session, *draft.Receipt)
		if err != nil {
			log.Warn("proof upload failed, creating order without proof", zap.Error(err))
			notices = append(notices, models.Notice{Level: models.NoticeWarning, Message: uploadFailedMessage})
		} else {
			proofURL = url
		}
	}

	order := models.OrderRequest{
		ServiceID:     c.service.ID,
		Name:          c.service.Title,
		Amount:        pricing.AmountLabel(draft.Quantity, c.service.Price),
		Cost:          totals.TotalCost,
		Profit:        totals.Profit,
		Link:          strings.TrimSpace(draft.Link),
		ProofURL:      proofURL,
		CustomerName:  strings.TrimSpace(draft.CustomerName),
		PaymentMethod: draft.PaymentMethod,
	}

	var err error
	if c.ctx.Err() == nil {
		err = c.opts.Creator.CreateOrder(runCtx, session, order)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		log.Info("checkout closed during submission, result discarded")
		return models.OrderResult{}, ErrCheckoutClosed
	}

	if err != nil {
		log.Error("order creation failed", zap.Error(err))
		c.state = models.StateIdle
		c.notices = append(notices, models.Notice{Level: models.NoticeError, Message: orderFailedMessage})
		return models.OrderResult{}, err
	}

	result := models.OrderResult{
		Cost:     order.Cost,
		Profit:   order.Profit,
		ProofURL: proofURL,
		Order:    order,
		Notices:  notices,
	}

	c.state = models.StateSuccess
	c.notices = notices
	c.result = &result

	log.Info("order submitted", zap.Float64("cost", order.Cost), zap.Bool("withProof", proofURL != ""))

	c.afterSuccess(session)

	return result, nil
}

// Close discards the dialog. An in-flight submission is cancelled and its result dropped.
func (c *Checkout) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	c.cancel()
}

func (c *Checkout) afterSuccess(session models.Session) {
	if c.opts.Jobs == nil {
		return
	}

	if c.opts.OnRefresh != nil {
		refresh := c.opts.OnRefresh
		if err := c.opts.Jobs.Enqueue(func(ctx context.Context) { refresh(ctx, session) }); err != nil {
			logger.Log.Warn("failed to enqueue refresh", zap.String("checkoutID", c.id), zap.Error(err))
		}
	}

	c.opts.Jobs.ScheduleJob(func(ctx context.Context) { c.dismiss() }, c.opts.DismissDelay)
}

func (c *Checkout) dismiss() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.cancel()
	c.mu.Unlock()

	if c.opts.OnDismiss != nil {
		c.opts.OnDismiss(c.id)
	}
}

func (c *Checkout) editableLocked() error {
	switch {
	case c.closed:
		return ErrCheckoutClosed
	case c.state == models.StateSubmitting:
		return ErrSubmitInProgress
	case c.state == models.StateSuccess:
		return ErrAlreadySubmitted
	}
	return nil
}

func (c *Checkout) totalsLocked() pricing.Totals {
	return pricing.ComputeTotals(c.rate.Value, c.draft.Quantity, c.draft.ResalePrice, c.currency.Rate)
}

func validateDraft(d models.OrderDraft) error {
	var result *multierror.Error

	if strings.TrimSpace(d.Link) == "" {
		result = multierror.Append(result, ErrLinkRequired)
	}

	if strings.TrimSpace(d.CustomerName) == "" {
		result = multierror.Append(result, ErrCustomerNameRequired)
	}

	if d.PaymentMethod.RequiresReceipt() && d.Receipt == nil {
		result = multierror.Append(result, ErrReceiptRequired)
	}

	return result.ErrorOrNil()
}

func violationMessages(err error) []string {
	var merr *multierror.Error
	if !errors.As(err, &merr) {
		return nil
	}

	messages := make([]string, 0, len(merr.Errors))
	for _, e := range merr.Errors {
		messages = append(messages, e.Error())
	}
	return messages
}
