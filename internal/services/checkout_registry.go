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
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrCheckoutNotFound = errors.New("checkout not found")

// DefaultCheckoutIdleTTL - через сколько без обращений брошенный диалог удаляется.
const DefaultCheckoutIdleTTL = 30 * time.Minute

type serviceReader interface {
	Get(ctx context.Context, id int) (models.Service, error)
}

// CheckoutRegistry хранит открытые диалоги заказа. Диалог виден только своему владельцу.
type CheckoutRegistry struct {
	catalog serviceReader
	opts    CheckoutOptions
	newID   func() string
	now     func() time.Time
	idleTTL time.Duration

	mu        sync.Mutex
	checkouts map[string]*registryEntry
}

type registryEntry struct {
	checkout *Checkout
	touched  time.Time
}

func NewCheckoutRegistry(catalog serviceReader, opts CheckoutOptions) *CheckoutRegistry {
	registry := &CheckoutRegistry{
		catalog:   catalog,
		newID:     uuid.NewString,
		now:       time.Now,
		idleTTL:   DefaultCheckoutIdleTTL,
		checkouts: make(map[string]*registryEntry),
	}

	onDismiss := opts.OnDismiss
	opts.OnDismiss = func(id string) {
		registry.forget(id)
		if onDismiss != nil {
			onDismiss(id)
		}
	}
	registry.opts = opts

	return registry
}

// WithIdleTTL задаёт срок жизни диалога без обращений. ttl <= 0 оставляет значение по умолчанию.
func (r *CheckoutRegistry) WithIdleTTL(ttl time.Duration) *CheckoutRegistry {
	if ttl > 0 {
		r.idleTTL = ttl
	}
	return r
}

// StartSweeper периодически удаляет брошенные диалоги, пока ctx не отменён.
func (r *CheckoutRegistry) StartSweeper(ctx context.Context, jobs jobScheduler, interval time.Duration) {
	var sweep Job
	sweep = func(context.Context) {
		if ctx.Err() != nil {
			return
		}

		if evicted := r.evictIdle(); evicted > 0 {
			logger.Log.Info("idle checkouts evicted", zap.Int("count", evicted))
		}

		jobs.ScheduleJob(sweep, interval)
	}

	jobs.ScheduleJob(sweep, interval)
}

// Open starts a dialog for a service. An empty currency falls back to the session preference.
func (r *CheckoutRegistry) Open(ctx context.Context, session models.Session, serviceID int, currency string) (models.CheckoutView, error) {
	service, err := r.catalog.Get(ctx, serviceID)
	if err != nil {
		return models.CheckoutView{}, err
	}

	if strings.TrimSpace(currency) == "" {
		currency = session.Currency
	}

	checkout := NewCheckout(r.newID(), service, session, pricing.LookupCurrency(currency), r.opts)

	r.mu.Lock()
	r.checkouts[checkout.ID()] = &registryEntry{checkout: checkout, touched: r.now()}
	r.mu.Unlock()

	logger.Log.Debug("checkout opened", zap.String("checkoutID", checkout.ID()), zap.Int("serviceID", serviceID))

	return checkout.View(), nil
}

func (r *CheckoutRegistry) View(session models.Session, id string) (models.CheckoutView, error) {
	checkout, err := r.lookup(session, id)
	if err != nil {
		return models.CheckoutView{}, err
	}

	return checkout.View(), nil
}

func (r *CheckoutRegistry) Update(session models.Session, id string, patch models.DraftPatch) (models.CheckoutView, error) {
	checkout, err := r.lookup(session, id)
	if err != nil {
		return models.CheckoutView{}, err
	}

	if err := checkout.Apply(patch); err != nil {
		return models.CheckoutView{}, err
	}

	return checkout.View(), nil
}

func (r *CheckoutRegistry) AttachReceipt(session models.Session, id string, receipt models.Receipt) (models.CheckoutView, error) {
	checkout, err := r.lookup(session, id)
	if err != nil {
		return models.CheckoutView{}, err
	}

	if err := checkout.AttachReceipt(receipt); err != nil {
		return models.CheckoutView{}, err
	}

	return checkout.View(), nil
}

func (r *CheckoutRegistry) Submit(ctx context.Context, session models.Session, id string) (models.OrderResult, error) {
	checkout, err := r.lookup(session, id)
	if err != nil {
		return models.OrderResult{}, err
	}

	return checkout.Submit(ctx, session)
}

// Close закрывает диалог и отменяет незавершённую отправку.
func (r *CheckoutRegistry) Close(session models.Session, id string) error {
	checkout, err := r.lookup(session, id)
	if err != nil {
		return err
	}

	checkout.Close()
	r.forget(id)

	return nil
}

func (r *CheckoutRegistry) size() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.checkouts)
}

func (r *CheckoutRegistry) lookup(session models.Session, id string) (*Checkout, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.checkouts[id]
	if !ok || entry.checkout.owner != session.Subject {
		return nil, ErrCheckoutNotFound
	}
	entry.touched = r.now()

	return entry.checkout, nil
}

// evictIdle закрывает диалоги, к которым не обращались дольше idleTTL.
// Диалог с отправкой в процессе не трогается.
func (r *CheckoutRegistry) evictIdle() int {
	now := r.now()

	r.mu.Lock()
	var idle []*Checkout
	for id, entry := range r.checkouts {
		if now.Sub(entry.touched) < r.idleTTL || entry.checkout.State() == models.StateSubmitting {
			continue
		}
		idle = append(idle, entry.checkout)
		delete(r.checkouts, id)
	}
	r.mu.Unlock()

	for _, checkout := range idle {
		checkout.Close()
	}

	return len(idle)
}

func (r *CheckoutRegistry) forget(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.checkouts, id)
}
