package billing

import (
	"context"
	"errors"
	"sync"

	"checkout-be/internal/address"
	"checkout-be/internal/checkout"
	"checkout-be/internal/logger"
	"checkout-be/internal/metrics"
	"checkout-be/internal/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/message"
)

var ErrUnauthenticated = errors.New("address book requires an authenticated user")

// Identity is the authenticated user a section renders for. A nil
// *Identity is a guest.
type Identity struct {
	UserID uint
	Email  string
}

// AddressUpdater performs the billing address write.
type AddressUpdater interface {
	UpdateBillingAddress(ctx context.Context, input checkout.AddressUpdateInput) (*checkout.Checkout, address.FieldErrors, error)
}

// AddressSource provides the address book of the user found in ctx.
type AddressSource interface {
	List(ctx context.Context) ([]*address.SavedAddress, error)
	Get(ctx context.Context, addressID uuid.UUID) (*address.SavedAddress, error)
	Default(ctx context.Context, addrType address.AddressType) (*address.SavedAddress, error)
}

type Deps struct {
	Updater AddressUpdater
	Source  AddressSource
	Alerts  Alerts
}

// FormData is a billing submission. AutoSave marks writes issued by the
// section itself rather than by the user.
type FormData struct {
	Address  address.Address
	AutoSave bool
}

// Section is one mounted billing address section of a checkout. Its
// events are serialized; a write in flight is not cancelled by Unmount.
type Section struct {
	mu sync.Mutex

	checkout     checkout.Checkout
	locale       string
	languageCode string
	identity     *Identity

	updater AddressUpdater
	source  AddressSource
	alerts  Alerts
	feed    *AlertFeed
	printer *message.Printer

	sameAsShipping      bool
	prior               Snapshot
	passDefaultFormData bool

	saveState   SaveStateTracker
	fieldErrors FieldErrorState

	addresses      []*address.SavedAddress
	defaultBilling *address.SavedAddress
}

// NewSection mounts a section for state. For an authenticated identity
// the address book and default billing address are loaded once.
func NewSection(
	ctx context.Context,
	state *checkout.Checkout,
	locale string,
	identity *Identity,
	deps Deps,
) (*Section, error) {

	if state == nil {
		return nil, checkout.ErrCheckoutNotFound
	}

	languageCode, err := utils.LanguageCode(locale)
	if err != nil {
		languageCode = state.LanguageCode
	}

	s := &Section{
		checkout:     cloneCheckout(state),
		locale:       locale,
		languageCode: languageCode,
		identity:     identity,
		updater:      deps.Updater,
		source:       deps.Source,
		alerts:       deps.Alerts,
		printer:      newPrinter(locale),
	}

	if s.alerts == nil {
		s.feed = NewAlertFeed()
		s.alerts = s.feed
	} else if feed, ok := s.alerts.(*AlertFeed); ok {
		s.feed = feed
	}

	s.sameAsShipping = InitialPreference(&s.checkout)
	s.prior = Snapshot{
		ShippingAddress: address.Clone(s.checkout.ShippingAddress),
		SameAsShipping:  s.sameAsShipping,
	}
	s.passDefaultFormData = s.checkout.BillingAddress != nil

	log := s.logger(ctx).With(zap.String("method", "NewSection"))

	if identity != nil && s.source != nil {
		userCtx := s.userCtx(ctx)

		addrs, err := s.source.List(userCtx)
		if err != nil {
			log.Error("failed to load address book", zap.Error(err))
			return nil, err
		}
		s.addresses = addrs

		def, err := s.source.Default(userCtx, address.TypeBilling)
		if err != nil {
			log.Error("failed to load default billing address", zap.Error(err))
			return nil, err
		}
		s.defaultBilling = def
	}

	log.Debug("section mounted",
		zap.Bool("same_as_shipping", s.sameAsShipping),
		zap.Bool("authenticated", identity != nil),
	)

	return s, nil
}

func (s *Section) CheckoutID() uuid.UUID {
	return s.checkout.ID
}

func (s *Section) Identity() *Identity {
	return s.identity
}

// Locale is the locale the section was mounted with; it does not follow
// later requests.
func (s *Section) Locale() string {
	return s.locale
}

// SetSameAsShipping handles the "use shipping as billing" toggle. The
// toggle stays off while the checkout needs no shipping.
func (s *Section) SetSameAsShipping(ctx context.Context, value bool) Action {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.checkout.IsShippingRequired {
		value = false
	}
	s.sameAsShipping = value
	return s.evaluate(ctx)
}

// ObserveCheckout takes a newer state of the checkout, typically after its
// shipping address changed, and re-evaluates the mirroring decision.
func (s *Section) ObserveCheckout(ctx context.Context, c *checkout.Checkout) Action {
	if c == nil {
		return Action{Kind: NoOp}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.checkout.ShippingAddress = address.Clone(c.ShippingAddress)
	s.checkout.BillingAddress = address.Clone(c.BillingAddress)
	s.checkout.IsShippingRequired = c.IsShippingRequired
	s.checkout.UpdatedAt = c.UpdatedAt

	if !c.IsShippingRequired {
		s.sameAsShipping = false
	}

	return s.evaluate(ctx)
}

// SubmitBillingAddress writes a billing address entered by the user. It
// returns ValidationErrors when the write was rejected.
func (s *Section) SubmitBillingAddress(ctx context.Context, form FormData) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.submit(ctx, form)
}

// SelectAddress submits an entry of the user's address book as billing
// address.
func (s *Section) SelectAddress(ctx context.Context, addressID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.identity == nil || s.source == nil {
		return ErrUnauthenticated
	}

	saved, err := s.source.Get(s.userCtx(ctx), addressID)
	if err != nil {
		return err
	}

	return s.submit(ctx, FormData{Address: saved.Address})
}

// evaluate runs one decision against the prior snapshot. Must hold s.mu.
func (s *Section) evaluate(ctx context.Context) Action {
	current := Snapshot{
		ShippingAddress: s.checkout.ShippingAddress,
		SameAsShipping:  s.sameAsShipping,
	}

	act := Decide(current, s.prior)

	if !current.SameAsShipping && s.prior.SameAsShipping {
		s.passDefaultFormData = false
	}
	s.prior = Advance(current, s.prior, act)

	metrics.RecordSyncAction(act.Kind.String())

	if act.Kind == OverwriteBillingWithShipping {
		s.mirrorShipping(ctx, act.Address)
	}

	return act
}

// mirrorShipping copies shipping into billing unless they already match.
// Must hold s.mu.
func (s *Section) mirrorShipping(ctx context.Context, shipping *address.Address) {
	if shipping == nil {
		return
	}
	if address.IsMatching(s.checkout.BillingAddress, shipping) {
		s.logger(ctx).Debug("billing already matches shipping")
		return
	}

	if err := s.submit(ctx, FormData{Address: *shipping, AutoSave: true}); err != nil {
		s.logger(ctx).Debug("mirroring shipping into billing failed", zap.Error(err))
	}
}

// submit issues exactly one write. Must hold s.mu.
func (s *Section) submit(ctx context.Context, form FormData) error {
	log := s.logger(ctx).With(
		zap.String("method", "submit"),
		zap.Bool("auto_save", form.AutoSave),
	)

	s.saveState.Begin()
	timer := metrics.StartTimer()

	updated, fieldErrs, err := s.updater.UpdateBillingAddress(ctx, checkout.AddressUpdateInput{
		CheckoutID:      s.checkout.ID.String(),
		LanguageCode:    s.languageCode,
		Address:         form.Address,
		ValidationRules: address.RulesFor(form.AutoSave),
	})
	if err != nil {
		log.Warn("billing address update failed", zap.Error(err))
		fieldErrs = append(fieldErrs, address.FieldError{
			Message: err.Error(),
			Code:    address.CodeGraphQL,
		})
	}

	if len(fieldErrs) > 0 {
		_ = s.saveState.Fail()
		s.alerts.ShowErrors(ctx, fieldErrs, KeyBillingUpdate)
		s.fieldErrors.SetAPIErrors(fieldErrs)
		metrics.ObserveBillingUpdate(metrics.ResultError, form.AutoSave, timer)
		return ValidationErrors(fieldErrs)
	}

	_ = s.saveState.Succeed()
	s.fieldErrors.Clear()
	if updated != nil {
		s.checkout.BillingAddress = address.Clone(updated.BillingAddress)
		s.checkout.UpdatedAt = updated.UpdatedAt
	}
	metrics.ObserveBillingUpdate(metrics.ResultSuccess, form.AutoSave, timer)

	log.Info("billing address saved")
	return nil
}

// userCtx carries the section's identity to the address source.
func (s *Section) userCtx(ctx context.Context) context.Context {
	if s.identity == nil {
		return ctx
	}
	return utils.SetUserContext(ctx, s.identity.UserID, s.identity.Email, "")
}

func (s *Section) logger(ctx context.Context) *zap.Logger {
	return logger.FromCtx(ctx).With(
		zap.String("service", "BillingSection"),
		zap.String("checkout_id", s.checkout.ID.String()),
	)
}

func cloneCheckout(c *checkout.Checkout) checkout.Checkout {
	out := *c
	out.ShippingAddress = address.Clone(c.ShippingAddress)
	out.BillingAddress = address.Clone(c.BillingAddress)
	if c.UserID != nil {
		uid := *c.UserID
		out.UserID = &uid
	}
	return out
}
