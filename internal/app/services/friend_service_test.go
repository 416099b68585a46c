package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslink/clubnet/internal/app/models"
	"github.com/campuslink/clubnet/internal/pkg/apperrors"
)

func newFriendServiceForTest() (FriendService, *fakeFriendRepo, *fakeUserRepo) {
	friendRepo := newFakeFriendRepo()
	userRepo := newFakeUserRepo()
	svc := NewFriendService(friendRepo, userRepo, testLogger())
	return svc, friendRepo, userRepo
}

func seedUser(repo *fakeUserRepo, firstName, email string) *models.User {
	return repo.add(&models.User{
		StudentID: "S-" + firstName,
		FirstName: firstName,
		LastName:  "Tester",
		Email:     email,
		Password:  "hashed",
		Role:      models.RoleStudent,
		Verified:  true,
	})
}

func TestFriendService_SendRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending request", func(t *testing.T) {
		svc, _, userRepo := newFriendServiceForTest()
		alice := seedUser(userRepo, "Alice", "alice@campus.edu")
		bob := seedUser(userRepo, "Bob", "bob@campus.edu")

		resp, err := svc.SendRequest(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, alice.ID, resp.Requester.ID)
		assert.Equal(t, bob.ID, resp.Recipient.ID)
	})

	t.Run("rejects self request", func(t *testing.T) {
		svc, _, userRepo := newFriendServiceForTest()
		alice := seedUser(userRepo, "Alice", "alice@campus.edu")

		_, err := svc.SendRequest(ctx, alice.ID, alice.ID)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("rejects unknown recipient", func(t *testing.T) {
		svc, _, userRepo := newFriendServiceForTest()
		alice := seedUser(userRepo, "Alice", "alice@campus.edu")

		_, err := svc.SendRequest(ctx, alice.ID, 999)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("rejects when already friends", func(t *testing.T) {
		svc, friendRepo, userRepo := newFriendServiceForTest()
		alice := seedUser(userRepo, "Alice", "alice@campus.edu")
		bob := seedUser(userRepo, "Bob", "bob@campus.edu")
		require.NoError(t, friendRepo.AddFriendship(ctx, 0, alice.ID, bob.ID))

		_, err := svc.SendRequest(ctx, alice.ID, bob.ID)
		assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	})

	t.Run("rejects pending request in either direction", func(t *testing.T) {
		svc, _, userRepo := newFriendServiceForTest()
		alice := seedUser(userRepo, "Alice", "alice@campus.edu")
		bob := seedUser(userRepo, "Bob", "bob@campus.edu")

		_, err := svc.SendRequest(ctx, alice.ID, bob.ID)
		require.NoError(t, err)

		_, err = svc.SendRequest(ctx, alice.ID, bob.ID)
		assert.ErrorIs(t, err, apperrors.ErrDuplicate)

		// Reverse direction is blocked by the same pending request.
		_, err = svc.SendRequest(ctx, bob.ID, alice.ID)
		assert.ErrorIs(t, err, apperrors.ErrDuplicate)
	})
}

func TestFriendService_AcceptRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("accept makes friendship symmetric and removes the request", func(t *testing.T) {
		svc, friendRepo, userRepo := newFriendServiceForTest()
		alice := seedUser(userRepo, "Alice", "alice@campus.edu")
		bob := seedUser(userRepo, "Bob", "bob@campus.edu")

		resp, err := svc.SendRequest(ctx, alice.ID, bob.ID)
		require.NoError(t, err)

		require.NoError(t, svc.AcceptRequest(ctx, resp.ID, bob.ID))

		friends, err := friendRepo.AreFriends(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.True(t, friends)
		friends, err = friendRepo.AreFriends(ctx, bob.ID, alice.ID)
		require.NoError(t, err)
		assert.True(t, friends)

		request, err := friendRepo.GetRequestByID(ctx, resp.ID)
		require.NoError(t, err)
		assert.Nil(t, request)
	})

	t.Run("only the recipient sees the request", func(t *testing.T) {
		svc, friendRepo, userRepo := newFriendServiceForTest()
		alice := seedUser(userRepo, "Alice", "alice@campus.edu")
		bob := seedUser(userRepo, "Bob", "bob@campus.edu")

		resp, err := svc.SendRequest(ctx, alice.ID, bob.ID)
		require.NoError(t, err)

		// Anyone but the recipient gets the same answer as for a
		// request that never existed.
		err = svc.AcceptRequest(ctx, resp.ID, alice.ID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)

		request, err := friendRepo.GetRequestByID(ctx, resp.ID)
		require.NoError(t, err)
		assert.NotNil(t, request)
	})

	t.Run("missing request is not found", func(t *testing.T) {
		svc, _, userRepo := newFriendServiceForTest()
		bob := seedUser(userRepo, "Bob", "bob@campus.edu")

		err := svc.AcceptRequest(ctx, 42, bob.ID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestFriendService_RejectRequest(t *testing.T) {
	ctx := context.Background()

	t.Run("reject discards the request and allows resending", func(t *testing.T) {
		svc, friendRepo, userRepo := newFriendServiceForTest()
		alice := seedUser(userRepo, "Alice", "alice@campus.edu")
		bob := seedUser(userRepo, "Bob", "bob@campus.edu")

		resp, err := svc.SendRequest(ctx, alice.ID, bob.ID)
		require.NoError(t, err)

		require.NoError(t, svc.RejectRequest(ctx, resp.ID, bob.ID))

		friends, err := friendRepo.AreFriends(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		assert.False(t, friends)

		_, err = svc.SendRequest(ctx, alice.ID, bob.ID)
		assert.NoError(t, err)
	})

	t.Run("only the recipient may reject", func(t *testing.T) {
		svc, _, userRepo := newFriendServiceForTest()
		alice := seedUser(userRepo, "Alice", "alice@campus.edu")
		bob := seedUser(userRepo, "Bob", "bob@campus.edu")

		resp, err := svc.SendRequest(ctx, alice.ID, bob.ID)
		require.NoError(t, err)

		err = svc.RejectRequest(ctx, resp.ID, alice.ID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestFriendService_RemoveFriend(t *testing.T) {
	ctx := context.Background()

	t.Run("remove dissolves the friendship for both sides", func(t *testing.T) {
		svc, friendRepo, userRepo := newFriendServiceForTest()
		alice := seedUser(userRepo, "Alice", "alice@campus.edu")
		bob := seedUser(userRepo, "Bob", "bob@campus.edu")

		resp, err := svc.SendRequest(ctx, alice.ID, bob.ID)
		require.NoError(t, err)
		require.NoError(t, svc.AcceptRequest(ctx, resp.ID, bob.ID))

		require.NoError(t, svc.RemoveFriend(ctx, alice.ID, bob.ID))

		friends, err := friendRepo.AreFriends(ctx, bob.ID, alice.ID)
		require.NoError(t, err)
		assert.False(t, friends)

		// A new request can be sent after removal.
		_, err = svc.SendRequest(ctx, bob.ID, alice.ID)
		assert.NoError(t, err)
	})

	t.Run("removing a non-friend is not found", func(t *testing.T) {
		svc, _, userRepo := newFriendServiceForTest()
		alice := seedUser(userRepo, "Alice", "alice@campus.edu")
		bob := seedUser(userRepo, "Bob", "bob@campus.edu")

		err := svc.RemoveFriend(ctx, alice.ID, bob.ID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestFriendService_ListRequests(t *testing.T) {
	ctx := context.Background()
	svc, _, userRepo := newFriendServiceForTest()
	alice := seedUser(userRepo, "Alice", "alice@campus.edu")
	bob := seedUser(userRepo, "Bob", "bob@campus.edu")
	carol := seedUser(userRepo, "Carol", "carol@campus.edu")

	_, err := svc.SendRequest(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = svc.SendRequest(ctx, carol.ID, alice.ID)
	require.NoError(t, err)

	resp, err := svc.ListRequests(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, resp.Incoming, 1)
	require.Len(t, resp.Outgoing, 1)
	assert.Equal(t, carol.ID, resp.Incoming[0].Requester.ID)
	assert.Equal(t, bob.ID, resp.Outgoing[0].Recipient.ID)
}

func TestFriendService_ListFriends(t *testing.T) {
	ctx := context.Background()
	svc, _, userRepo := newFriendServiceForTest()
	alice := seedUser(userRepo, "Alice", "alice@campus.edu")
	bob := seedUser(userRepo, "Bob", "bob@campus.edu")
	carol := seedUser(userRepo, "Carol", "carol@campus.edu")

	for _, friend := range []*models.User{bob, carol} {
		resp, err := svc.SendRequest(ctx, alice.ID, friend.ID)
		require.NoError(t, err)
		require.NoError(t, svc.AcceptRequest(ctx, resp.ID, friend.ID))
	}

	resp, err := svc.ListFriends(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, resp.Friends, 2)
}
