package service

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/umalmyha/dataverse/internal/auth"
	apperrors "github.com/umalmyha/dataverse/internal/errors"
	"github.com/umalmyha/dataverse/internal/model"
	"github.com/umalmyha/dataverse/internal/odata"
	"github.com/umalmyha/dataverse/internal/repository"
	rpsMocks "github.com/umalmyha/dataverse/internal/repository/mocks"
	"github.com/umalmyha/dataverse/internal/tracker"
	"github.com/umalmyha/dataverse/internal/validation"
)

const testToken = "opaque-token"

type managerTestData struct {
	ctx        context.Context
	accountID  string
	contactID  string
	incidentID string
}

type entityManagerTestSuite struct {
	suite.Suite
	manager       EntityManager
	accountsMock  *rpsMocks.AccountRepository
	contactsMock  *rpsMocks.ContactRepository
	incidentsMock *rpsMocks.IncidentRepository
	tracker       tracker.Tracker
	logHook       *test.Hook
	testData      *managerTestData
}

func (s *entityManagerTestSuite) SetupSuite() {
	s.testData = &managerTestData{
		ctx:        context.Background(),
		accountID:  "5e0a3c1a-9f2b-4b8e-8a55-0f5d1e2b3c01",
		contactID:  "7c9d2e4f-1a3b-4c5d-9e8f-2a3b4c5d6e02",
		incidentID: "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c03",
	}
}

func (s *entityManagerTestSuite) SetupTest() {
	t := s.T()

	v, err := validation.New()
	s.Require().NoError(err)

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	s.logHook = hook

	s.accountsMock = rpsMocks.NewAccountRepository(t)
	s.contactsMock = rpsMocks.NewContactRepository(t)
	s.incidentsMock = rpsMocks.NewIncidentRepository(t)
	s.tracker = tracker.NewMemoryTracker()
	s.manager = NewEntityManager(s.accountsMock, s.contactsMock, s.incidentsMock, s.tracker, v, logger)
}

func notFoundErr(kind, id string) error {
	return apperrors.NewRemoteRequestError("delete", kind, id, http.StatusNotFound, []byte(`{"error":{"code":"0x80040217"}}`))
}

func (s *entityManagerTestSuite) TestRunSuccessfully() {
	ctx := s.testData.ctx
	accountID, contactID, incidentID := s.testData.accountID, s.testData.contactID, s.testData.incidentID
	sc := DefaultScenario()

	primaryContact := odata.NewExpand(repository.AccountPrimaryContactNav, "fullname")
	customer := odata.NewExpand(repository.IncidentCustomerAccountNav, "name")

	s.accountsMock.On("Create", ctx, sc.Account, testToken).Return(accountID, nil).Once()
	s.accountsMock.On("GetByID", ctx, accountID, (*odata.Expand)(nil), testToken).Return(model.Account{ID: accountID, Name: "NewAccount"}, nil).Once()
	s.contactsMock.On("Create", ctx, sc.Contact, testToken).Return(contactID, nil).Once()
	s.contactsMock.On("GetByID", ctx, contactID, (*odata.Expand)(nil), testToken).Return(model.Contact{ID: contactID, Email: "contact@test.com"}, nil).Once()
	s.contactsMock.On("Update", ctx, contactID, sc.ContactUpdate, testToken).Return(nil).Once()
	s.contactsMock.On("GetByID", ctx, contactID, (*odata.Expand)(nil), testToken).Return(model.Contact{ID: contactID, Email: "update@test2.com"}, nil).Once()
	s.accountsMock.On("LinkPrimaryContact", ctx, accountID, contactID, testToken).Return(nil).Once()
	s.accountsMock.On("GetByID", ctx, accountID, primaryContact, testToken).Return(model.Account{
		ID:               accountID,
		Name:             "NewAccount",
		PrimaryContactID: model.Ptr(contactID),
		PrimaryContact:   &model.Contact{ID: contactID, FullName: "Test Contact"},
	}, nil).Once()
	s.incidentsMock.On("Create", ctx, mock.MatchedBy(func(n model.NewIncident) bool {
		return n.Title == "Test Case" && n.Customer == odata.BindTo(odata.KindAccount, accountID)
	}), testToken).Return(incidentID, nil).Once()
	s.incidentsMock.On("GetRawByID", ctx, incidentID, customer, testToken).Return(odata.Projection{"statuscode": 1}, nil).Once()
	s.incidentsMock.On("Update", ctx, incidentID, sc.IncidentUpdate, testToken).Return(nil).Once()
	s.incidentsMock.On("GetRawByID", ctx, incidentID, customer, testToken).Return(odata.Projection{"statuscode": 4, "emailaddress": "updated@case.com"}, nil).Once()

	s.T().Log("workflow completes and every created entity is tracked")
	{
		run, err := s.manager.Run(ctx, sc, testToken)
		s.Require().NoError(err, "no error must be raised")
		s.NotEmpty(run.ID)
		s.Equal("update@test2.com", run.Contact.Email)
		s.Require().NotNil(run.Account.PrimaryContact)
		s.Equal("Test Contact", run.Account.PrimaryContact.FullName)
		s.Equal("updated@case.com", run.Incident["emailaddress"])

		refs, err := s.tracker.Refs(ctx, run.ID)
		s.Require().NoError(err)
		s.Equal([]tracker.Ref{
			{Kind: odata.KindAccount, ID: accountID},
			{Kind: odata.KindContact, ID: contactID},
			{Kind: odata.KindIncident, ID: incidentID},
		}, refs)
		s.Equal("run completed", s.logHook.LastEntry().Message)
	}
}

func (s *entityManagerTestSuite) TestRunInvalidScenario() {
	sc := DefaultScenario()
	sc.Account.Name = ""
	sc.IncidentUpdate.StatusCode = model.Ptr(model.IncidentStatus(9))

	s.T().Log("invalid input fails before any remote call")
	{
		_, err := s.manager.Run(s.testData.ctx, sc, testToken)

		var pldErr *validation.PayloadError
		s.Require().True(errors.As(err, &pldErr), "error must be PayloadError")
		s.accountsMock.AssertNotCalled(s.T(), "Create", mock.Anything, mock.Anything, mock.Anything)
	}
}

func (s *entityManagerTestSuite) TestRunRejectsToken() {
	ctx := s.testData.ctx

	s.T().Log("missing token")
	{
		_, err := s.manager.Run(ctx, DefaultScenario(), "")
		s.ErrorIs(err, apperrors.ErrMissingToken)
	}

	s.T().Log("expired token")
	{
		_, priv, err := ed25519.GenerateKey(rand.Reader)
		s.Require().NoError(err)

		tkn, err := auth.NewJwtIssuer("test", "https://org.crm11.dynamics.com", time.Minute, priv).Sign("user", time.Now().Add(-time.Hour))
		s.Require().NoError(err)

		_, err = s.manager.Run(ctx, DefaultScenario(), tkn.Signed)
		s.ErrorIs(err, auth.ErrTokenExpired)
	}
}

func (s *entityManagerTestSuite) TestRunFailsMidway() {
	ctx := s.testData.ctx
	accountID := s.testData.accountID
	sc := DefaultScenario()

	s.accountsMock.On("Create", ctx, sc.Account, testToken).Return(accountID, nil).Once()
	s.accountsMock.On("GetByID", ctx, accountID, (*odata.Expand)(nil), testToken).Return(model.Account{ID: accountID}, nil).Once()
	s.contactsMock.On("Create", ctx, sc.Contact, testToken).
		Return("", apperrors.NewRemoteRequestError("create", "contact", "", http.StatusBadRequest, []byte("bad"))).Once()

	s.T().Log("partial run is returned with tracked account")
	{
		run, err := s.manager.Run(ctx, sc, testToken)
		s.Require().Error(err)
		s.Require().NotNil(run, "partial run must be returned")

		var remoteErr *apperrors.RemoteRequestError
		s.Require().True(errors.As(err, &remoteErr))
		s.Equal(http.StatusBadRequest, remoteErr.StatusCode)

		refs, err := s.tracker.Refs(ctx, run.ID)
		s.Require().NoError(err)
		s.Equal([]tracker.Ref{{Kind: odata.KindAccount, ID: accountID}}, refs)
	}
}

func (s *entityManagerTestSuite) trackRun(runID string) {
	ctx := s.testData.ctx
	s.Require().NoError(s.tracker.Track(ctx, runID, tracker.Ref{Kind: odata.KindAccount, ID: s.testData.accountID}))
	s.Require().NoError(s.tracker.Track(ctx, runID, tracker.Ref{Kind: odata.KindContact, ID: s.testData.contactID}))
	s.Require().NoError(s.tracker.Track(ctx, runID, tracker.Ref{Kind: odata.KindIncident, ID: s.testData.incidentID}))
}

func (s *entityManagerTestSuite) TestCleanupOrder() {
	ctx := s.testData.ctx
	runID := "run-1"
	s.trackRun(runID)

	var order []string
	record := func(args mock.Arguments) {
		order = append(order, args.String(1))
	}

	s.incidentsMock.On("Delete", ctx, s.testData.incidentID, testToken).Return(nil).Run(record).Once()
	s.contactsMock.On("Delete", ctx, s.testData.contactID, testToken).Return(notFoundErr("contact", s.testData.contactID)).Run(record).Once()
	s.accountsMock.On("Delete", ctx, s.testData.accountID, testToken).Return(nil).Run(record).Once()

	s.T().Log("dependents are deleted first, missing entity counts as deleted")
	{
		err := s.manager.Cleanup(ctx, runID, testToken)
		s.Require().NoError(err, "no error must be raised")
		s.Equal([]string{s.testData.incidentID, s.testData.contactID, s.testData.accountID}, order)

		runs, err := s.tracker.Runs(ctx)
		s.Require().NoError(err)
		s.Empty(runs, "run must be forgotten")
	}
}

func (s *entityManagerTestSuite) TestCleanupKeepsGoing() {
	ctx := s.testData.ctx
	runID := "run-1"
	s.trackRun(runID)

	s.incidentsMock.On("Delete", ctx, s.testData.incidentID, testToken).
		Return(apperrors.NewRemoteRequestError("delete", "incident", s.testData.incidentID, http.StatusInternalServerError, nil)).Once()
	s.contactsMock.On("Delete", ctx, s.testData.contactID, testToken).Return(nil).Once()
	s.accountsMock.On("Delete", ctx, s.testData.accountID, testToken).
		Return(apperrors.NewTransportError("delete", "account", errors.New("connection reset"))).Once()

	s.T().Log("failures are aggregated and run is kept")
	{
		err := s.manager.Cleanup(ctx, runID, testToken)
		s.Require().Error(err)

		var merr *multierror.Error
		s.Require().True(errors.As(err, &merr))
		s.Len(merr.Errors, 2)

		runs, err := s.tracker.Runs(ctx)
		s.Require().NoError(err)
		s.Equal([]string{runID}, runs)
	}
}

func (s *entityManagerTestSuite) TestCleanupPending() {
	ctx := s.testData.ctx
	s.Require().NoError(s.tracker.Track(ctx, "run-1", tracker.Ref{Kind: odata.KindAccount, ID: "a-1"}))
	s.Require().NoError(s.tracker.Track(ctx, "run-2", tracker.Ref{Kind: odata.KindAccount, ID: "a-2"}))

	s.accountsMock.On("Delete", ctx, "a-1", testToken).Return(nil).Once()
	s.accountsMock.On("Delete", ctx, "a-2", testToken).Return(nil).Once()

	err := s.manager.CleanupPending(ctx, testToken)
	s.Require().NoError(err, "no error must be raised")

	runs, err := s.tracker.Runs(ctx)
	s.Require().NoError(err)
	s.Empty(runs)
}

func (s *entityManagerTestSuite) TestListAll() {
	ctx := s.testData.ctx

	s.accountsMock.On("GetAll", mock.Anything, odata.NewExpand(repository.AccountPrimaryContactNav, "fullname"), "").
		Return([]model.Account{{ID: "a-1"}}, nil).Once()
	s.contactsMock.On("GetAll", mock.Anything, (*odata.Expand)(nil), "").
		Return([]model.Contact{{ID: "c-1"}, {ID: "c-2"}}, nil).Once()
	s.incidentsMock.On("GetAll", mock.Anything, odata.NewExpand(repository.IncidentCustomerAccountNav, "name"), "").
		Return([]model.Incident{}, nil).Once()

	s.T().Log("reads do not require token")
	{
		snapshot, err := s.manager.ListAll(ctx, "")
		s.Require().NoError(err, "no error must be raised")
		s.Len(snapshot.Accounts, 1)
		s.Len(snapshot.Contacts, 2)
		s.Empty(snapshot.Incidents)
	}
}

func (s *entityManagerTestSuite) TestListAllFailed() {
	ctx := s.testData.ctx
	envErr := apperrors.NewMalformedEnvelopeError("contact", `key "value" is absent`)

	s.accountsMock.On("GetAll", mock.Anything, mock.Anything, testToken).Return([]model.Account{}, nil).Maybe()
	s.contactsMock.On("GetAll", mock.Anything, mock.Anything, testToken).Return(nil, envErr).Once()
	s.incidentsMock.On("GetAll", mock.Anything, mock.Anything, testToken).Return([]model.Incident{}, nil).Maybe()

	_, err := s.manager.ListAll(ctx, testToken)
	s.Require().Error(err)
	s.ErrorIs(err, envErr)
}

func TestEntityManagerTestSuite(t *testing.T) {
	suite.Run(t, new(entityManagerTestSuite))
}
