// Package service hosts phone input controllers behind session IDs: every
// request restores a controller from its snapshot, applies one operation,
// stores the new snapshot and reports the state and the emitted events.
package service

import (
	"context"
	"errors"
	"strings"

	"flagphone_backend/internal/countries"
	"flagphone_backend/internal/events"
	"flagphone_backend/internal/phoneinput/domain"
	"flagphone_backend/internal/phoneinput/numbering"
	"flagphone_backend/internal/phoneinput/session"
	"flagphone_backend/internal/phoneinput/transport"
	"flagphone_backend/platform/apperr"
	"flagphone_backend/platform/logger"

	"github.com/google/uuid"
)

const msgSessionNotFound = "phone input session not found"

// Options are the controller defaults for new sessions.
type Options struct {
	DefaultRegion string
	MaxDigits     int
	Placeholder   bool
}

// Service manages phone input sessions.
type Service struct {
	dir       *countries.Directory
	source    numbering.Source
	validator numbering.Validator
	store     session.Store
	eventBus  events.Bus
	log       *logger.Logger
	opts      Options
	newID     func() string
}

// New creates a service over the given directory and numbering source.
func New(dir *countries.Directory, source numbering.Source, store session.Store, log *logger.Logger, opts Options) *Service {
	return &Service{
		dir:       dir,
		source:    source,
		validator: numbering.NewValidator(source),
		store:     store,
		log:       log,
		opts:      opts,
		newID:     uuid.NewString,
	}
}

// SetEventBus injects the bus that receives controller events.
func (s *Service) SetEventBus(bus events.Bus) {
	s.eventBus = bus
}

// Create opens a session. The region defaults to the configured one; an
// optional country selection and number are applied in that order.
func (s *Service) Create(ctx context.Context, req transport.CreateSessionRequest) (*transport.SessionResponse, error) {
	region := strings.ToUpper(strings.TrimSpace(req.Region))
	if region == "" {
		region = s.opts.DefaultRegion
	}

	ctrl := s.newController(region)
	rec := &domain.Recorder{}
	ctrl.SetObserver(rec)
	before := ctrl.State()

	applied := true
	if req.Countries != nil {
		sel, err := toSelection(*req.Countries)
		if err != nil {
			return nil, apperr.Validation(err.Error()).WithOp("phoneinput.Create")
		}
		applied = ctrl.SetCountries(sel)
	}
	if req.Number != "" {
		applied = ctrl.SetPhoneNumber(req.Number) && applied
	}

	return s.save(ctx, s.newID(), ctrl, rec, before, applied)
}

// Get returns the current state of a session.
func (s *Service) Get(ctx context.Context, id string) (*transport.SessionResponse, error) {
	ctrl, err := s.load(ctx, id, "phoneinput.Get")
	if err != nil {
		return nil, err
	}
	return s.response(id, ctrl, nil, true), nil
}

// Delete closes a session.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		s.log.StoreError("delete", err)
		return apperr.Wrap(apperr.KindInternal, "session store unavailable", err).WithOp("phoneinput.Delete")
	}
	return nil
}

// Edit replaces the typed text of a session.
func (s *Service) Edit(ctx context.Context, id string, req transport.EditRequest) (*transport.SessionResponse, error) {
	return s.apply(ctx, id, "phoneinput.Edit", func(c *domain.Controller) bool {
		c.Edit(req.Text)
		return true
	})
}

// SetCountry selects a country. Codes the session does not offer are
// ignored and reported with Applied=false.
func (s *Service) SetCountry(ctx context.Context, id string, req transport.SetCountryRequest) (*transport.SessionResponse, error) {
	return s.apply(ctx, id, "phoneinput.SetCountry", func(c *domain.Controller) bool {
		return c.SetCountry(req.Code)
	})
}

// SetNumber sets a complete number. Unparseable input is ignored and
// reported with Applied=false.
func (s *Service) SetNumber(ctx context.Context, id string, req transport.SetNumberRequest) (*transport.SessionResponse, error) {
	return s.apply(ctx, id, "phoneinput.SetNumber", func(c *domain.Controller) bool {
		return c.SetPhoneNumber(req.Number)
	})
}

// SetCountries narrows the countries a session offers. A selection that
// matches nothing is ignored and reported with Applied=false.
func (s *Service) SetCountries(ctx context.Context, id string, req transport.SelectionRequest) (*transport.SessionResponse, error) {
	sel, err := toSelection(req)
	if err != nil {
		return nil, apperr.Validation(err.Error()).WithOp("phoneinput.SetCountries")
	}
	return s.apply(ctx, id, "phoneinput.SetCountries", func(c *domain.Controller) bool {
		return c.SetCountries(sel)
	})
}

// Number returns the canonical forms of the session's number.
func (s *Service) Number(ctx context.Context, id string) (*transport.NumberResponse, error) {
	ctrl, err := s.load(ctx, id, "phoneinput.Number")
	if err != nil {
		return nil, err
	}

	e164, ok := ctrl.RawPhoneNumber()
	if !ok {
		return nil, apperr.InvalidNumber("input is not a phone number yet").WithOp("phoneinput.Number")
	}
	uri, _ := ctrl.URI()
	return &transport.NumberResponse{E164: e164, URI: uri}, nil
}

func (s *Service) newController(region string) *domain.Controller {
	return domain.NewController(s.dir, s.source, domain.Options{
		Region:      region,
		MaxDigits:   s.opts.MaxDigits,
		Placeholder: s.opts.Placeholder,
	})
}

func (s *Service) load(ctx context.Context, id, op string) (*domain.Controller, error) {
	snap, err := s.store.Get(ctx, id)
	if errors.Is(err, session.ErrNotFound) {
		return nil, apperr.NotFound(msgSessionNotFound).WithOp(op)
	}
	if err != nil {
		s.log.StoreError("get", err)
		return nil, apperr.Wrap(apperr.KindInternal, "session store unavailable", err).WithOp(op)
	}

	ctrl := s.newController(s.opts.DefaultRegion)
	ctrl.Restore(snap)
	return ctrl, nil
}

// apply restores the session inside a store update so concurrent requests
// on one session serialise instead of overwriting each other.
func (s *Service) apply(ctx context.Context, id, op string, fn func(*domain.Controller) bool) (*transport.SessionResponse, error) {
	var (
		ctrl    *domain.Controller
		rec     *domain.Recorder
		before  domain.State
		applied bool
	)

	err := s.store.Update(ctx, id, func(snap domain.Snapshot) (domain.Snapshot, error) {
		ctrl = s.newController(s.opts.DefaultRegion)
		ctrl.Restore(snap)
		rec = &domain.Recorder{}
		ctrl.SetObserver(rec)
		before = ctrl.State()
		applied = fn(ctrl)
		return ctrl.Snapshot(), nil
	})
	switch {
	case errors.Is(err, session.ErrNotFound):
		return nil, apperr.NotFound(msgSessionNotFound).WithOp(op)
	case errors.Is(err, session.ErrConflict):
		return nil, apperr.Conflict("phone input session is busy, retry").WithOp(op)
	case err != nil:
		s.log.StoreError("update", err)
		return nil, apperr.Wrap(apperr.KindInternal, "session store unavailable", err).WithOp(op)
	}

	s.publish(ctx, id, before, rec.Events())
	return s.response(id, ctrl, rec.Events(), applied), nil
}

func (s *Service) save(ctx context.Context, id string, ctrl *domain.Controller, rec *domain.Recorder, before domain.State, applied bool) (*transport.SessionResponse, error) {
	if err := s.store.Put(ctx, id, ctrl.Snapshot()); err != nil {
		s.log.StoreError("put", err)
		return nil, apperr.Wrap(apperr.KindInternal, "session store unavailable", err).WithOp("phoneinput.save")
	}

	s.publish(ctx, id, before, rec.Events())
	return s.response(id, ctrl, rec.Events(), applied), nil
}

// publish forwards controller events to the bus. Validation events carry
// the region that was selected when they fired.
func (s *Service) publish(ctx context.Context, id string, before domain.State, evs []domain.Event) {
	if s.eventBus == nil {
		return
	}

	region := ""
	if before.Country != nil {
		region = before.Country.Code
	}
	for _, ev := range evs {
		switch ev.Kind {
		case domain.KindCountrySelected:
			region = ev.Country.Code
			s.eventBus.Publish(ctx, events.CountrySelected{
				BaseEvent: events.NewBaseEvent(),
				SessionID: id,
				Code:      ev.Country.Code,
				DialCode:  ev.Country.DialCode,
				Name:      ev.Country.Name,
			})
		case domain.KindValidationChanged:
			s.eventBus.Publish(ctx, events.ValidationChanged{
				BaseEvent: events.NewBaseEvent(),
				SessionID: id,
				Region:    region,
				Digits:    countDigits(ev.Validation.DisplayText),
				IsValid:   ev.Validation.IsValid,
			})
		}
	}
}

func (s *Service) response(id string, ctrl *domain.Controller, evs []domain.Event, applied bool) *transport.SessionResponse {
	if evs == nil {
		evs = []domain.Event{}
	}

	sel := ctrl.Selection()
	mode := sel.Mode
	if mode == "" {
		mode = countries.ModeAll
	}

	return &transport.SessionResponse{
		ID:    id,
		State: ctrl.State(),
		Selection: transport.SelectionView{
			Mode:  string(mode),
			Codes: sel.Codes,
			Count: len(ctrl.Countries()),
		},
		Events:  evs,
		Applied: applied,
	}
}

func toSelection(req transport.SelectionRequest) (countries.Selection, error) {
	mode, err := countries.ParseMode(req.Mode)
	if err != nil {
		return countries.Selection{}, err
	}
	codes := make([]string, 0, len(req.Codes))
	for _, code := range req.Codes {
		codes = append(codes, countries.NormalizeCode(code))
	}
	return countries.Selection{Mode: mode, Codes: codes}, nil
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
