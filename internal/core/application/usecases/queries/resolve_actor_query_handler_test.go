package queries_test

import (
	"errors"

	"repair/internal/core/application/usecases/queries"
	"repair/internal/core/domain/model/actor"
	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/domain/model/serviceprofile"
	"repair/internal/pkg/errs"
)

func (s *QuerySuite) resolve(verifier *MockTokenVerifier, token string) (actor.Principal, error) {
	query, err := queries.NewResolveActorQuery(token)
	s.Require().NoError(err)
	return queries.NewResolveActorQueryHandler(s.db, verifier).Handle(s.ctx, query)
}

func (s *QuerySuite) TestResolveActor_ServiceWithProfile() {
	owner := s.seedActor(actor.RoleService, true)
	profile := s.seedProfile(owner.ID(), "Fix", "tech", serviceprofile.VerificationVerified, 0, 0)

	verifier := new(MockTokenVerifier)
	verifier.On("Verify", "good").Return(owner.Phone(), nil).Once()

	p, err := s.resolve(verifier, "good")
	s.Require().NoError(err)
	s.True(p.ActorID().IsEqual(owner.ID()))
	s.Equal(actor.RoleService, p.Role())
	serviceID, ok := p.ServiceID()
	s.Require().True(ok)
	s.True(serviceID.IsEqual(profile.ID()))
	_, ok = p.PickupPointID()
	s.False(ok)
}

func (s *QuerySuite) TestResolveActor_Failures() {
	disabled := s.seedActor(actor.RoleClient, false)
	unknown, err := kernel.NewPhoneNumber("+7 900 000-00-00")
	s.Require().NoError(err)

	verifier := new(MockTokenVerifier)
	verifier.On("Verify", "forged").Return(kernel.PhoneNumber{}, errs.NewUnauthenticatedError(errs.ReasonInvalidToken, "bad signature")).Once()
	verifier.On("Verify", "stale").Return(kernel.PhoneNumber{}, errs.NewUnauthenticatedError(errs.ReasonTokenExpired, "token expired")).Once()
	verifier.On("Verify", "orphan").Return(unknown, nil).Once()
	verifier.On("Verify", "disabled").Return(disabled.Phone(), nil).Once()

	_, err = s.resolve(verifier, "forged")
	s.Require().ErrorIs(err, queries.ErrInvalidToken)
	s.Equal(errs.ReasonInvalidToken, errs.ReasonOf(err))

	_, err = s.resolve(verifier, "stale")
	s.Require().ErrorIs(err, errs.ErrUnauthenticated)
	s.Equal(errs.ReasonTokenExpired, errs.ReasonOf(err))

	_, err = s.resolve(verifier, "orphan")
	s.Require().ErrorIs(err, queries.ErrActorNotFound)
	s.Equal(errs.ReasonActorNotFound, errs.ReasonOf(err))

	_, err = s.resolve(verifier, "disabled")
	s.Require().ErrorIs(err, actor.ErrAccountDisabled)
	s.Equal(errs.ReasonAccountDisabled, errs.ReasonOf(err))

	for _, e := range []error{queries.ErrInvalidToken, queries.ErrActorNotFound, actor.ErrAccountDisabled} {
		s.True(errors.Is(e, errs.ErrUnauthenticated))
	}
}

func (s *QuerySuite) TestResolveActorQuery_EmptyToken() {
	_, err := queries.NewResolveActorQuery("  ")
	s.Require().ErrorIs(err, errs.ErrUnauthenticated)
	s.Equal(errs.ReasonMissingToken, errs.ReasonOf(err))
}
