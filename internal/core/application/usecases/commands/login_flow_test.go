package commands_test

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"time"

	"repair/internal/adapters/out/codestore"
	"repair/internal/adapters/out/jwttoken"
	"repair/internal/core/application/usecases/commands"
	"repair/internal/core/domain/model/actor"
	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/ports"
	"repair/internal/pkg/errs"
)

var errRedisDown = errors.New("dial tcp: connection refused")

// unreachablePrimary fails every call the way a dead Redis does.
type unreachablePrimary struct{}

func (unreachablePrimary) Set(context.Context, string, string, time.Duration) error {
	return errRedisDown
}
func (unreachablePrimary) Take(context.Context, string) (string, bool, error) {
	return "", false, errRedisDown
}
func (unreachablePrimary) Delete(context.Context, string) error { return errRedisDown }
func (unreachablePrimary) Ping(context.Context) error           { return errRedisDown }
func (unreachablePrimary) Close() error                         { return nil }

type outbox struct {
	mu       sync.Mutex
	messages []string
}

func (o *outbox) Send(_ context.Context, _ kernel.PhoneNumber, message string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.messages = append(o.messages, message)
	return nil
}

func (o *outbox) lastCode() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.messages) == 0 {
		return ""
	}
	return regexp.MustCompile(`\d{4}`).FindString(o.messages[len(o.messages)-1])
}

func (s *ScenarioSuite) TestLoginSurvivesPrimaryOutage() {
	store := codestore.NewStore(unreachablePrimary{}, codestore.NewMemoryTier(), discard)
	tokens, err := jwttoken.NewService("scenario-secret", time.Hour)
	s.Require().NoError(err)
	sent := &outbox{}

	request := commands.NewRequestCodeCommandHandler(store, sent, time.Minute, discard)
	verify := commands.NewVerifyCodeCommandHandler(store, s.actorFactory(), tokens, discard)

	reqCmd, err := commands.NewRequestCodeCommand("8 (912) 555-01-02")
	s.Require().NoError(err)
	s.Require().NoError(request.Handle(s.ctx, reqCmd))
	s.True(store.PrimaryDown())

	verCmd, err := commands.NewVerifyCodeCommand("+79125550102", sent.lastCode())
	s.Require().NoError(err)
	session, err := verify.Handle(s.ctx, verCmd)
	s.Require().NoError(err)
	s.NotEmpty(session.Token)

	owner, err := tokens.Verify(session.Token)
	s.Require().NoError(err)
	s.Equal("+7 912 555-01-02", owner.String())

	var registered *actor.Actor
	s.inTx(func(uow ports.UnitOfWork) error {
		registered, err = uow.ActorRepository().GetByPhone(s.ctx, owner)
		return err
	})
	s.Equal(actor.RoleClient, registered.Role())
	s.True(registered.IsActive())

	// the code is single use even on the memory tier
	_, err = verify.Handle(s.ctx, verCmd)
	s.ErrorIs(err, commands.ErrCodeNotFound)
	s.ErrorIs(err, errs.ErrUnauthenticated)
}
