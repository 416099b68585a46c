package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslink/clubnet/internal/app/models"
	"github.com/campuslink/clubnet/internal/pkg/apperrors"
)

type searchServiceFixture struct {
	svc        SearchService
	userRepo   *fakeUserRepo
	clubRepo   *fakeClubRepo
	postRepo   *fakePostRepo
	followRepo *fakeFollowRepo
}

func newSearchServiceForTest(t *testing.T) *searchServiceFixture {
	t.Helper()
	f := &searchServiceFixture{
		userRepo:   newFakeUserRepo(),
		clubRepo:   newFakeClubRepo(),
		postRepo:   newFakePostRepo(),
		followRepo: newFakeFollowRepo(),
	}
	f.svc = NewSearchService(f.userRepo, f.clubRepo, f.postRepo, f.followRepo, testLogger())

	ctx := context.Background()
	seedUser(f.userRepo, "Robin", "robin@campus.edu")
	clubID, err := f.clubRepo.Create(ctx, &models.Club{Name: "Robotics Society", Description: "We build robots"}, 1)
	require.NoError(t, err)
	require.NoError(t, f.followRepo.Add(ctx, 5, clubID))
	_, err = f.postRepo.Create(ctx, &models.Post{
		ClubID:   clubID,
		AuthorID: 1,
		Content:  "Robot demo on Friday",
		Media:    []string{},
	})
	require.NoError(t, err)
	return f
}

func TestSearchService_Search(t *testing.T) {
	ctx := context.Background()

	t.Run("all filter touches every entity kind", func(t *testing.T) {
		f := newSearchServiceForTest(t)

		resp, err := f.svc.Search(ctx, "rob", "all")
		require.NoError(t, err)
		assert.Len(t, resp.Users, 1)
		require.Len(t, resp.Clubs, 1)
		assert.Len(t, resp.Posts, 1)
		assert.Equal(t, int64(1), resp.Clubs[0].FollowerCount)
	})

	t.Run("empty filter defaults to all", func(t *testing.T) {
		f := newSearchServiceForTest(t)

		resp, err := f.svc.Search(ctx, "rob", "")
		require.NoError(t, err)
		assert.NotNil(t, resp.Users)
		assert.NotNil(t, resp.Clubs)
		assert.NotNil(t, resp.Posts)
	})

	t.Run("scoped filters leave other kinds nil", func(t *testing.T) {
		f := newSearchServiceForTest(t)

		resp, err := f.svc.Search(ctx, "rob", SearchFilterClub)
		require.NoError(t, err)
		assert.Nil(t, resp.Users)
		assert.Len(t, resp.Clubs, 1)
		assert.Nil(t, resp.Posts)
	})

	t.Run("unknown filter is a validation error", func(t *testing.T) {
		f := newSearchServiceForTest(t)

		_, err := f.svc.Search(ctx, "rob", "events")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("blank query is a validation error", func(t *testing.T) {
		f := newSearchServiceForTest(t)

		_, err := f.svc.Search(ctx, "  ", "all")
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})
}
