package handler

import (
	"context"
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"attesta/internal/document/render"
	docservice "attesta/internal/document/service"
	"attesta/internal/document/store"
	"attesta/internal/platform/logger"
	"attesta/internal/proofofaddress"
	"attesta/internal/resident"
	id "attesta/pkg/domain"
	"attesta/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite

	router chi.Router

	clerkID     id.UserID
	residentID  id.ResidentID
	residenceID id.ResidenceID
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	directory := resident.NewInMemory()

	s.clerkID = id.UserID(uuid.New())
	s.residentID = id.ResidentID(uuid.New())
	s.residenceID = id.ResidenceID(uuid.New())

	ctx := context.Background()
	s.Require().NoError(directory.PutResidence(ctx, &resident.Residence{
		ID:          s.residenceID,
		AddressLine: "14 Mulberry Lane",
		Village:     "Greenbrook",
	}))
	s.Require().NoError(directory.PutResident(ctx, &resident.Resident{
		ID:          s.residentID,
		Name:        "Amaia Serrano",
		NationalID:  "GB-4471002",
		ResidenceID: s.residenceID,
	}))

	documents := docservice.New(
		store.NewInMemory(),
		directory,
		render.NewTemplateRenderer(),
		render.NewFSArtifactStore(s.T().TempDir()),
		docservice.WithLogger(logger.New()),
	)
	service := proofofaddress.NewService(documents, directory)

	s.router = chi.NewRouter()
	New(service, logger.New()).Register(s.router)
}

func (s *HandlerSuite) TestIssue() {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/documents/proof-of-address", IssueRequest{
		ResidentID: s.residentID.String(),
	})
	req = testutil.WithUserID(req, s.clerkID.String())

	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatus(s.T(), rr, http.StatusCreated)

	resp := testutil.UnmarshalResponse[IssueResponse](s.T(), rr)
	s.Equal("14 Mulberry Lane", resp.Certificate.AddressLine)
	s.NotEmpty(resp.Certificate.ReferenceNumber)
	s.NotEmpty(resp.Certificate.VerificationCode)

	content, err := base64.StdEncoding.DecodeString(resp.Content)
	s.Require().NoError(err)
	s.Contains(string(content), "Amaia Serrano")
}

func (s *HandlerSuite) TestIssue_WithoutPrincipal() {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/documents/proof-of-address", IssueRequest{
		ResidentID: s.residentID.String(),
	})

	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusAndError(s.T(), rr, http.StatusUnauthorized, "unauthorized")
}

func (s *HandlerSuite) TestIssue_UnknownResident() {
	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/documents/proof-of-address", IssueRequest{
		ResidentID: uuid.NewString(),
	})
	req = testutil.WithUserID(req, s.clerkID.String())

	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
}

func (s *HandlerSuite) TestListByResident() {
	issueReq := testutil.NewJSONRequest(s.T(), http.MethodPost, "/documents/proof-of-address", IssueRequest{
		ResidentID: s.residentID.String(),
	})
	issueReq = testutil.WithUserID(issueReq, s.clerkID.String())
	testutil.AssertStatus(s.T(), testutil.DoRequest(s.router, issueReq), http.StatusCreated)

	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet,
		"/documents/proof-of-address/resident/"+s.residentID.String()))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)

	certificates := testutil.UnmarshalResponse[[]proofofaddress.ProofOfAddress](s.T(), rr)
	s.Require().Len(*certificates, 1)
	s.Equal(s.residenceID, (*certificates)[0].ResidenceID)
}

func (s *HandlerSuite) TestListByResidence_Empty() {
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet,
		"/documents/proof-of-address/residence/"+uuid.NewString()))
	testutil.AssertStatus(s.T(), rr, http.StatusOK)

	certificates := testutil.UnmarshalResponse[[]proofofaddress.ProofOfAddress](s.T(), rr)
	s.Empty(*certificates)
}
