package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"
	"github.com/umalmyha/dataverse/internal/dataversetest"
	apperrors "github.com/umalmyha/dataverse/internal/errors"
	"github.com/umalmyha/dataverse/internal/model"
	"github.com/umalmyha/dataverse/internal/odata"
	"github.com/umalmyha/dataverse/internal/repository"
	"github.com/umalmyha/dataverse/internal/tracker"
	"github.com/umalmyha/dataverse/internal/transport"
	"github.com/umalmyha/dataverse/internal/validation"
)

type workflowTestSuite struct {
	suite.Suite
	server  *dataversetest.Server
	tracker tracker.Tracker
	manager EntityManager
}

func (s *workflowTestSuite) SetupTest() {
	srv, err := dataversetest.NewServer()
	s.Require().NoError(err, "fake service must start")
	s.server = srv

	v, err := validation.New()
	s.Require().NoError(err)

	logger := logrus.New()
	logger.SetLevel(logrus.WarnLevel)

	client := transport.NewClient(transport.DefaultTimeout, logger)
	cfg := repository.Config{BaseURL: srv.BaseURL()}

	s.tracker = tracker.NewMemoryTracker()
	s.manager = NewEntityManager(
		repository.NewAccountRepository(client, cfg),
		repository.NewContactRepository(client, cfg),
		repository.NewIncidentRepository(client, cfg),
		s.tracker,
		v,
		logger,
	)
}

func (s *workflowTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *workflowTestSuite) TestRunAndCleanup() {
	ctx := context.Background()
	token := s.server.Token()

	s.T().Log("reference workflow against fake service")
	run, err := s.manager.Run(ctx, DefaultScenario(), token)
	{
		s.Require().NoError(err, "no error must be raised")
		s.Equal("update@test2.com", run.Contact.Email)
		s.Equal("Test Contact", run.Contact.FullName)
		s.Require().NotNil(run.Account.PrimaryContact, "primary contact must be expanded")
		s.Equal("Test Contact", run.Account.PrimaryContact.FullName)
		s.Equal(run.Contact.ID, *run.Account.PrimaryContactID)

		s.Equal("updated@case.com", run.Incident["emailaddress"])
		s.Equal(json.Number("4"), run.Incident["statuscode"])
		customer, ok := run.Incident[repository.IncidentCustomerAccountNav].(map[string]any)
		s.Require().True(ok, "customer account must be expanded")
		s.Equal("NewAccount", customer["name"])
	}

	s.T().Log("all kinds are listed")
	{
		snapshot, err := s.manager.ListAll(ctx, token)
		s.Require().NoError(err, "no error must be raised")
		s.Len(snapshot.Accounts, 1)
		s.Len(snapshot.Contacts, 1)
		s.Require().Len(snapshot.Incidents, 1)
		s.Equal(model.IncidentStatusResolved, snapshot.Incidents[0].StatusCode)
		s.Require().NotNil(snapshot.Incidents[0].CustomerAccount)
		s.Equal("NewAccount", snapshot.Incidents[0].CustomerAccount.Name)
	}

	s.T().Log("cleanup removes everything the run created")
	{
		s.Require().NoError(s.manager.Cleanup(ctx, run.ID, token))
		s.Zero(s.server.Count(odata.KindAccount))
		s.Zero(s.server.Count(odata.KindContact))
		s.Zero(s.server.Count(odata.KindIncident))
	}

	s.T().Log("every mutation was authorized")
	{
		for _, req := range s.server.Requests() {
			s.Equal("Bearer "+token, req.Authorization, "%s %s", req.Method, req.Path)
		}
	}
}

func (s *workflowTestSuite) TestInterruptedRunIsCleanedUpLater() {
	ctx := context.Background()
	token := s.server.Token()

	s.server.Fail(http.MethodPost, odata.KindIncident, dataversetest.Fault{
		Status: http.StatusInternalServerError,
		Body:   `{"error":{"code":"0x80040216","message":"An unexpected error occurred."}}`,
	})

	s.T().Log("incident creation fails")
	{
		run, err := s.manager.Run(ctx, DefaultScenario(), token)
		s.Require().Error(err)
		s.Require().NotNil(run)

		var remoteErr *apperrors.RemoteRequestError
		s.Require().True(errors.As(err, &remoteErr))
		s.Equal(http.StatusInternalServerError, remoteErr.StatusCode)
		s.Contains(remoteErr.BodyExcerpt, "An unexpected error occurred.")
	}

	s.T().Log("pending run is cleaned up")
	{
		s.server.ClearFaults()

		s.Require().NoError(s.manager.CleanupPending(ctx, token))
		s.Zero(s.server.Count(odata.KindAccount))
		s.Zero(s.server.Count(odata.KindContact))

		runs, err := s.tracker.Runs(ctx)
		s.Require().NoError(err)
		s.Empty(runs)
	}
}

func (s *workflowTestSuite) TestRejectedToken() {
	ctx := context.Background()

	_, err := s.manager.Run(ctx, DefaultScenario(), "opaque-but-unknown")

	var remoteErr *apperrors.RemoteRequestError
	s.Require().True(errors.As(err, &remoteErr), "remote service must reject token")
	s.Equal(http.StatusUnauthorized, remoteErr.StatusCode)
	s.Zero(s.server.Count(odata.KindAccount))
}

func TestWorkflowTestSuite(t *testing.T) {
	suite.Run(t, new(workflowTestSuite))
}
