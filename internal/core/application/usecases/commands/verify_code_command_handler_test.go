package commands_test

import (
	"testing"
	"time"

	"repair/internal/core/application/usecases/commands"
	"repair/internal/core/domain/model/actor"
	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/ports"
	"repair/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNewVerifyCodeCommand_RejectsMalformedCode(t *testing.T) {
	for _, code := range []string{"123", "12345", "12a4"} {
		_, err := commands.NewVerifyCodeCommand("+79123456789", code)
		require.Error(t, err, code)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid, code)
	}

	_, err := commands.NewVerifyCodeCommand("+79123456789", "")
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestVerifyCodeCommandHandler_Handle_CodeNotFound(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewVerifyCodeCommand("+79123456789", "1234")
	require.NoError(t, err)

	store := new(MockCodeStore)
	store.On("Take", ctx, commands.CodeKey(cmd.Phone())).Return("", false, nil).Once()
	uow := new(MockUoW)

	handler := commands.NewVerifyCodeCommandHandler(store, actorFactory(uow), new(MockTokenIssuer), discard)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrCodeNotFound)
	assert.ErrorIs(t, err, errs.ErrUnauthenticated)
	uow.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestVerifyCodeCommandHandler_Handle_CodeMismatch(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewVerifyCodeCommand("+79123456789", "1234")
	require.NoError(t, err)

	store := new(MockCodeStore)
	store.On("Take", ctx, commands.CodeKey(cmd.Phone())).Return("4321", true, nil).Once()
	issuer := new(MockTokenIssuer)

	handler := commands.NewVerifyCodeCommandHandler(store, actorFactory(new(MockUoW)), issuer, discard)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, commands.ErrCodeMismatch)
	issuer.AssertNotCalled(t, "Issue", mock.Anything)
}

func TestVerifyCodeCommandHandler_Handle_RegistersNewClient(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewVerifyCodeCommand("+79123456789", "1234")
	require.NoError(t, err)

	store := new(MockCodeStore)
	store.On("Take", ctx, commands.CodeKey(cmd.Phone())).Return("1234", true, nil).Once()

	actors := new(MockActorRepository)
	uow := &MockUoW{actors: actors}
	session := ports.Session{Token: "signed", ExpiresIn: 30 * time.Minute}
	issuer := new(MockTokenIssuer)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		actors.On("GetByPhone", ctx, cmd.Phone()).
			Return(nil, errs.NewObjectNotFoundError("actor", cmd.Phone().Masked())).Once(),
		actors.On("Add", ctx, mock.MatchedBy(func(a *actor.Actor) bool {
			return a.Role() == actor.RoleClient && a.IsActive() && a.Phone().IsEqual(cmd.Phone())
		})).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
		issuer.On("Issue", cmd.Phone()).Return(session, nil).Once(),
	)

	handler := commands.NewVerifyCodeCommandHandler(store, actorFactory(uow), issuer, discard)
	got, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, session, got)
	uow.AssertExpectations(t)
	actors.AssertExpectations(t)
	issuer.AssertExpectations(t)
}

func TestVerifyCodeCommandHandler_Handle_ExistingActorIsNotCommitted(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewVerifyCodeCommand("+79123456789", "1234")
	require.NoError(t, err)

	store := new(MockCodeStore)
	store.On("Take", ctx, mock.Anything).Return("1234", true, nil).Once()

	existing, err := actor.RestoreActor(kernel.NewUUID(), cmd.Phone(), actor.RoleService, true, time.Now())
	require.NoError(t, err)

	actors := new(MockActorRepository)
	uow := &MockUoW{actors: actors}
	uow.On("Begin", ctx).Return(nil).Once()
	actors.On("GetByPhone", ctx, cmd.Phone()).Return(existing, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	issuer := new(MockTokenIssuer)
	issuer.On("Issue", cmd.Phone()).Return(ports.Session{Token: "signed"}, nil).Once()

	handler := commands.NewVerifyCodeCommandHandler(store, actorFactory(uow), issuer, discard)
	_, err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	actors.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestVerifyCodeCommandHandler_Handle_DisabledAccount(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewVerifyCodeCommand("+79123456789", "1234")
	require.NoError(t, err)

	store := new(MockCodeStore)
	store.On("Take", ctx, mock.Anything).Return("1234", true, nil).Once()

	disabled, err := actor.RestoreActor(kernel.NewUUID(), cmd.Phone(), actor.RoleClient, false, time.Now())
	require.NoError(t, err)

	actors := new(MockActorRepository)
	uow := &MockUoW{actors: actors}
	uow.On("Begin", ctx).Return(nil).Once()
	actors.On("GetByPhone", ctx, cmd.Phone()).Return(disabled, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	issuer := new(MockTokenIssuer)

	handler := commands.NewVerifyCodeCommandHandler(store, actorFactory(uow), issuer, discard)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, actor.ErrAccountDisabled)
	issuer.AssertNotCalled(t, "Issue", mock.Anything)
}
