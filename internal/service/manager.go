package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/umalmyha/dataverse/internal/auth"
	apperrors "github.com/umalmyha/dataverse/internal/errors"
	"github.com/umalmyha/dataverse/internal/model"
	"github.com/umalmyha/dataverse/internal/odata"
	"github.com/umalmyha/dataverse/internal/repository"
	"github.com/umalmyha/dataverse/internal/tracker"
	"golang.org/x/sync/errgroup"
)

const (
	contactFullName = "fullname"
	accountName     = "name"
)

// cleanup order, dependents go first
var deletionOrder = map[odata.Kind]int{
	odata.KindIncident: 0,
	odata.KindContact:  1,
	odata.KindAccount:  2,
}

// PayloadValidator validates inputs before they are sent
type PayloadValidator interface {
	Validate(any) error
}

// Run is outcome of a demo run
type Run struct {
	ID       string
	Account  model.Account
	Contact  model.Contact
	Incident odata.Projection
}

// Snapshot holds all entities visible to the caller
type Snapshot struct {
	Accounts  []model.Account
	Contacts  []model.Contact
	Incidents []model.Incident
}

// EntityManager drives account/contact/incident workflow over entity repositories
type EntityManager interface {
	Run(context.Context, Scenario, string) (*Run, error)
	Cleanup(context.Context, string, string) error
	CleanupPending(context.Context, string) error
	ListAll(context.Context, string) (*Snapshot, error)
}

type entityManager struct {
	accounts  repository.AccountRepository
	contacts  repository.ContactRepository
	incidents repository.IncidentRepository
	tracker   tracker.Tracker
	validator PayloadValidator
	logger    logrus.FieldLogger
	now       func() time.Time
}

// NewEntityManager builds EntityManager
func NewEntityManager(
	accounts repository.AccountRepository,
	contacts repository.ContactRepository,
	incidents repository.IncidentRepository,
	trk tracker.Tracker,
	validator PayloadValidator,
	logger logrus.FieldLogger,
) EntityManager {
	return &entityManager{
		accounts:  accounts,
		contacts:  contacts,
		incidents: incidents,
		tracker:   trk,
		validator: validator,
		logger:    logger,
		now:       time.Now,
	}
}

// Run executes the workflow. Run is returned even on failure, tracked entities of it must be cleaned up.
func (m *entityManager) Run(ctx context.Context, sc Scenario, token string) (*Run, error) {
	if err := m.checkToken(token); err != nil {
		return nil, err
	}

	if err := m.validate(sc); err != nil {
		return nil, err
	}

	run := &Run{ID: uuid.NewString()}
	logger := m.logger.WithField("run", run.ID)
	logger.Info("run started")

	accountID, err := m.accounts.Create(ctx, sc.Account, token)
	if err != nil {
		return run, fmt.Errorf("failed to create account - %w", err)
	}
	if err := m.track(ctx, run.ID, odata.KindAccount, accountID); err != nil {
		return run, err
	}
	logger.WithField("accountId", accountID).Info("account created")

	if run.Account, err = m.accounts.GetByID(ctx, accountID, nil, token); err != nil {
		return run, fmt.Errorf("failed to read account - %w", err)
	}

	contactID, err := m.contacts.Create(ctx, sc.Contact, token)
	if err != nil {
		return run, fmt.Errorf("failed to create contact - %w", err)
	}
	if err := m.track(ctx, run.ID, odata.KindContact, contactID); err != nil {
		return run, err
	}
	logger.WithField("contactId", contactID).Info("contact created")

	if run.Contact, err = m.contacts.GetByID(ctx, contactID, nil, token); err != nil {
		return run, fmt.Errorf("failed to read contact - %w", err)
	}

	if err := m.contacts.Update(ctx, contactID, sc.ContactUpdate, token); err != nil {
		return run, fmt.Errorf("failed to update contact - %w", err)
	}
	if run.Contact, err = m.contacts.GetByID(ctx, contactID, nil, token); err != nil {
		return run, fmt.Errorf("failed to read updated contact - %w", err)
	}
	logger.WithField("contactId", contactID).Info("contact updated")

	if err := m.accounts.LinkPrimaryContact(ctx, accountID, contactID, token); err != nil {
		return run, fmt.Errorf("failed to link primary contact - %w", err)
	}

	primaryContact := odata.NewExpand(repository.AccountPrimaryContactNav, contactFullName)
	if run.Account, err = m.accounts.GetByID(ctx, accountID, primaryContact, token); err != nil {
		return run, fmt.Errorf("failed to read linked account - %w", err)
	}
	logger.WithFields(logrus.Fields{"accountId": accountID, "contactId": contactID}).Info("primary contact linked")

	incident := sc.Incident
	incident.Customer = odata.BindTo(odata.KindAccount, accountID)

	incidentID, err := m.incidents.Create(ctx, incident, token)
	if err != nil {
		return run, fmt.Errorf("failed to create incident - %w", err)
	}
	if err := m.track(ctx, run.ID, odata.KindIncident, incidentID); err != nil {
		return run, err
	}
	logger.WithField("incidentId", incidentID).Info("incident created")

	customer := odata.NewExpand(repository.IncidentCustomerAccountNav, accountName)
	if run.Incident, err = m.incidents.GetRawByID(ctx, incidentID, customer, token); err != nil {
		return run, fmt.Errorf("failed to read incident - %w", err)
	}

	if err := m.incidents.Update(ctx, incidentID, sc.IncidentUpdate, token); err != nil {
		return run, fmt.Errorf("failed to update incident - %w", err)
	}
	if run.Incident, err = m.incidents.GetRawByID(ctx, incidentID, customer, token); err != nil {
		return run, fmt.Errorf("failed to read updated incident - %w", err)
	}
	logger.WithField("incidentId", incidentID).Info("incident updated")

	logger.Info("run completed")
	return run, nil
}

// Cleanup deletes tracked entities of run, dependents first.
// It keeps going on failure, run is forgotten only when everything is gone.
func (m *entityManager) Cleanup(ctx context.Context, runID string, token string) error {
	if err := m.checkToken(token); err != nil {
		return err
	}

	refs, err := m.tracker.Refs(ctx, runID)
	if err != nil {
		return fmt.Errorf("failed to load entities of run %s - %w", runID, err)
	}

	sort.SliceStable(refs, func(i, j int) bool {
		return deletionOrder[refs[i].Kind] < deletionOrder[refs[j].Kind]
	})

	logger := m.logger.WithField("run", runID)

	var result *multierror.Error
	for _, ref := range refs {
		entry := logger.WithFields(logrus.Fields{"kind": ref.Kind, "id": ref.ID})

		if err := m.delete(ctx, ref, token); err != nil {
			if isNotFound(err) {
				entry.Info("entity is already gone")
				continue
			}
			entry.Warnf("failed to delete entity - %v", err)
			result = multierror.Append(result, err)
			continue
		}
		entry.Info("entity deleted")
	}

	if err := result.ErrorOrNil(); err != nil {
		return err
	}

	if err := m.tracker.Forget(ctx, runID); err != nil {
		return fmt.Errorf("failed to forget run %s - %w", runID, err)
	}
	logger.Info("run cleaned up")
	return nil
}

// CleanupPending cleans up every run tracker still holds
func (m *entityManager) CleanupPending(ctx context.Context, token string) error {
	runs, err := m.tracker.Runs(ctx)
	if err != nil {
		return fmt.Errorf("failed to load pending runs - %w", err)
	}

	if len(runs) > 0 {
		m.logger.WithField("runs", len(runs)).Info("cleaning up pending runs")
	}

	var result *multierror.Error
	for _, runID := range runs {
		if err := m.Cleanup(ctx, runID, token); err != nil {
			result = multierror.Append(result, fmt.Errorf("run %s - %w", runID, err))
		}
	}
	return result.ErrorOrNil()
}

// ListAll lists all three kinds concurrently
func (m *entityManager) ListAll(ctx context.Context, token string) (*Snapshot, error) {
	if token != "" {
		if err := m.checkToken(token); err != nil {
			return nil, err
		}
	}

	var snapshot Snapshot
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		accounts, err := m.accounts.GetAll(gCtx, odata.NewExpand(repository.AccountPrimaryContactNav, contactFullName), token)
		if err != nil {
			return fmt.Errorf("failed to list accounts - %w", err)
		}
		snapshot.Accounts = accounts
		return nil
	})

	g.Go(func() error {
		contacts, err := m.contacts.GetAll(gCtx, nil, token)
		if err != nil {
			return fmt.Errorf("failed to list contacts - %w", err)
		}
		snapshot.Contacts = contacts
		return nil
	})

	g.Go(func() error {
		incidents, err := m.incidents.GetAll(gCtx, odata.NewExpand(repository.IncidentCustomerAccountNav, accountName), token)
		if err != nil {
			return fmt.Errorf("failed to list incidents - %w", err)
		}
		snapshot.Incidents = incidents
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (m *entityManager) checkToken(token string) error {
	if token == "" {
		return apperrors.ErrMissingToken
	}

	info, err := auth.Inspect(token, m.now())
	if err != nil {
		return fmt.Errorf("bearer token rejected - %w", err)
	}

	if !info.Opaque {
		m.logger.WithFields(logrus.Fields{
			"subject":   info.Subject,
			"expiresAt": info.ExpiresAt,
		}).Debug("bearer token inspected")
	}
	return nil
}

func (m *entityManager) validate(sc Scenario) error {
	// customer binding is assigned once the account exists
	incident := sc.Incident
	incident.Customer = odata.BindTo(odata.KindAccount, "pending")

	for _, input := range []any{&sc.Account, &sc.Contact, &sc.ContactUpdate, &incident, &sc.IncidentUpdate} {
		if err := m.validator.Validate(input); err != nil {
			return err
		}
	}
	return nil
}

func (m *entityManager) track(ctx context.Context, runID string, kind odata.Kind, id string) error {
	if err := m.tracker.Track(ctx, runID, tracker.Ref{Kind: kind, ID: id}); err != nil {
		m.logger.WithFields(logrus.Fields{"run": runID, "kind": kind, "id": id}).Warn("entity created, but not tracked")
		return fmt.Errorf("failed to track %s %s - %w", kind, id, err)
	}
	return nil
}

func (m *entityManager) delete(ctx context.Context, ref tracker.Ref, token string) error {
	switch ref.Kind {
	case odata.KindAccount:
		return m.accounts.Delete(ctx, ref.ID, token)
	case odata.KindContact:
		return m.contacts.Delete(ctx, ref.ID, token)
	case odata.KindIncident:
		return m.incidents.Delete(ctx, ref.ID, token)
	default:
		return fmt.Errorf("unknown entity kind %q of %s", ref.Kind, ref.ID)
	}
}

func isNotFound(err error) bool {
	var remoteErr *apperrors.RemoteRequestError
	return errors.As(err, &remoteErr) && remoteErr.StatusCode == http.StatusNotFound
}
