package reporting

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/dmitrymomot/attendance-report/pkg/attendance"
	"github.com/dmitrymomot/attendance-report/pkg/email"
	"github.com/dmitrymomot/attendance-report/pkg/logger"
	"github.com/dmitrymomot/attendance-report/pkg/recipient"
	"github.com/dmitrymomot/attendance-report/pkg/sanitizer"
	"github.com/dmitrymomot/attendance-report/pkg/settings"
)

// DocumentStore persists the settings document. *settings.Codec implements it.
type DocumentStore interface {
	Load(ctx context.Context) (settings.Document, error)
	Save(ctx context.Context, doc settings.Document) error
}

// Sender dispatches a report email. *email.Dispatcher implements it.
type Sender interface {
	Send(ctx context.Context, msg email.Message) error
}

// Profile is the sender identity and the text around the report body.
type Profile struct {
	Sender     string `json:"sender"`
	Credential string `json:"-"`
	Header     string `json:"header"`
	Footer     string `json:"footer"`
}

// ProfileUpdate changes the fields that are set.
type ProfileUpdate struct {
	Sender     *string `json:"sender,omitempty"`
	Credential *string `json:"credential,omitempty"`
	Header     *string `json:"header,omitempty"`
	Footer     *string `json:"footer,omitempty"`
}

// Service holds the tool's state.
type Service struct {
	mu         sync.Mutex
	roster     *attendance.Roster
	recipients *recipient.Store
	profile    Profile
	report     string

	store  DocumentStore
	sender Sender
	now    func() time.Time
	log    *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithClock sets the time source used to date reports.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates a service with a blank state. Call Load to hydrate it.
func New(store DocumentStore, sender Sender, opts ...Option) *Service {
	s := &Service{
		roster:     attendance.NewRoster(),
		recipients: recipient.NewStore(),
		store:      store,
		sender:     sender,
		now:        time.Now,
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the state with the persisted document. When the document
// cannot be read the state is left blank and the error is returned so the
// caller can tell the operator; the service stays usable.
// Invalid entries in a readable document are skipped.
func (s *Service) Load(ctx context.Context) error {
	doc, err := s.store.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.roster = attendance.NewRoster()
	s.recipients = recipient.NewStore()
	s.profile = Profile{}
	s.report = ""

	if err != nil {
		s.log.WarnContext(ctx, "settings not loaded, starting blank",
			logger.Component("reporting"),
			logger.Error(err),
		)
		return err
	}

	for _, p := range doc.Names {
		if err := s.roster.Add(p.ChineseName, p.EnglishName); err != nil {
			s.log.WarnContext(ctx, "skipping roster entry",
				logger.Component("reporting"),
				logger.Person(p.ChineseName),
				logger.Error(err),
			)
		}
	}
	for _, addr := range doc.Recipients {
		if err := s.recipients.Add(addr); err != nil {
			s.log.WarnContext(ctx, "skipping recipient",
				logger.Component("reporting"),
				logger.Email("address", addr),
				logger.Error(err),
			)
		}
	}
	s.profile = Profile{
		Sender:     doc.Sender,
		Credential: doc.Credential,
		Header:     doc.Header,
		Footer:     doc.Footer,
	}

	s.log.InfoContext(ctx, "settings loaded",
		logger.Component("reporting"),
		slog.Int("people", s.roster.Len()),
		slog.Int("recipients", s.recipients.Len()),
	)
	return nil
}

// Save persists names, recipients and profile. Reasons and the report text
// are not persisted.
func (s *Service) Save(ctx context.Context) error {
	s.mu.Lock()
	doc := settings.Document{
		Names:      settings.Names(s.roster.Names()),
		Sender:     s.profile.Sender,
		Credential: s.profile.Credential,
		Recipients: s.recipients.List(),
		Header:     s.profile.Header,
		Footer:     s.profile.Footer,
	}
	s.mu.Unlock()

	if err := s.store.Save(ctx, doc); err != nil {
		s.log.ErrorContext(ctx, "settings not saved",
			logger.Component("reporting"),
			logger.Error(err),
		)
		return err
	}
	return nil
}

// AddPerson registers a person with no reasons selected and returns the
// stored entry.
func (s *Service) AddPerson(chineseName, englishName string) (attendance.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.roster.Add(chineseName, englishName); err != nil {
		return attendance.Person{}, &PersonError{Name: chineseName, Err: err}
	}
	p, _ := s.roster.Get(sanitizer.Trim(chineseName))
	return p, nil
}

// RemovePerson deletes a person.
func (s *Service) RemovePerson(chineseName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.roster.Remove(chineseName); err != nil {
		return &PersonError{Name: chineseName, Err: err}
	}
	return nil
}

// SetReason selects or clears a reason for a person.
func (s *Service) SetReason(chineseName string, reason attendance.Reason, selected bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.roster.SetReason(chineseName, reason, selected); err != nil {
		return &PersonError{Name: chineseName, Err: err}
	}
	return nil
}

// ClearReasons resets every person's reasons.
func (s *Service) ClearReasons() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roster.ClearReasons()
}

// People returns the roster in insertion order.
func (s *Service) People() []attendance.Person {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roster.People()
}

// Snapshot aggregates the roster.
func (s *Service) Snapshot() attendance.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.roster.Snapshot()
}

// GenerateReport formats today's report, stores it as the current body and
// returns it. Any earlier edit is replaced.
func (s *Service) GenerateReport() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.report = attendance.FormatReport(s.roster.Snapshot(), s.now())
	return s.report
}

// SetReportBody replaces the current body with an edited text.
func (s *Service) SetReportBody(body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.report = body
}

// Report returns the current body.
func (s *Service) Report() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.report
}

// AddRecipient adds an address.
func (s *Service) AddRecipient(address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recipients.Add(address)
}

// RemoveRecipient deletes an address.
func (s *Service) RemoveRecipient(address string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recipients.Remove(address)
}

// Recipients lists addresses in insertion order.
func (s *Service) Recipients() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.recipients.List()
}

// Profile returns the sender profile including the credential.
func (s *Service) Profile() Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// UpdateProfile applies the set fields of u.
func (s *Service) UpdateProfile(u ProfileUpdate) Profile {
	s.mu.Lock()
	defer s.mu.Unlock()

	if u.Sender != nil {
		s.profile.Sender = *u.Sender
	}
	if u.Credential != nil {
		s.profile.Credential = *u.Credential
	}
	if u.Header != nil {
		s.profile.Header = *u.Header
	}
	if u.Footer != nil {
		s.profile.Footer = *u.Footer
	}
	return s.profile
}

// SendReport emails the current body to every recipient. The message is
// captured under the lock; delivery runs without it so other calls are not
// held up by the relay.
func (s *Service) SendReport(ctx context.Context) error {
	s.mu.Lock()
	msg := email.Message{
		Sender:     s.profile.Sender,
		Credential: s.profile.Credential,
		Recipients: s.recipients.List(),
		Header:     s.profile.Header,
		Body:       s.report,
		Footer:     s.profile.Footer,
	}
	s.mu.Unlock()

	err := s.sender.Send(ctx, msg)
	if err == nil {
		s.log.InfoContext(ctx, "report sent",
			logger.Component("reporting"),
			logger.Event("report_sent"),
			logger.Recipients(msg.Recipients),
		)
		return nil
	}

	var report *email.RejectionReport
	if errors.As(err, &report) && errors.Is(err, email.ErrSendRejected) {
		s.log.WarnContext(ctx, "report sent with refused recipients",
			logger.Component("reporting"),
			slog.Int("refused", len(report.Refused)),
		)
	}
	return err
}
