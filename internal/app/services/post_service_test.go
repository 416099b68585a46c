package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslink/clubnet/internal/app/models"
	"github.com/campuslink/clubnet/internal/app/models/dto"
	"github.com/campuslink/clubnet/internal/pkg/apperrors"
)

type postServiceFixture struct {
	svc      PostService
	postRepo *fakePostRepo
	clubRepo *fakeClubRepo
	userRepo *fakeUserRepo
	storage  *fakeStorage
	clubID   int64
	adminID  int64
}

func newPostServiceForTest(t *testing.T) *postServiceFixture {
	t.Helper()
	f := &postServiceFixture{
		postRepo: newFakePostRepo(),
		clubRepo: newFakeClubRepo(),
		userRepo: newFakeUserRepo(),
		storage:  &fakeStorage{},
	}
	f.svc = NewPostService(f.postRepo, f.clubRepo, f.userRepo, f.storage, testLogger())

	admin := seedUser(f.userRepo, "Admin", "admin@campus.edu")
	f.adminID = admin.ID
	clubID, err := f.clubRepo.Create(context.Background(),
		&models.Club{Name: "Chess Club"}, f.adminID)
	require.NoError(t, err)
	f.clubID = clubID
	return f
}

func (f *postServiceFixture) createPost(t *testing.T, req *dto.CreatePostRequest, media []string) *dto.PostResponse {
	t.Helper()
	resp, err := f.svc.Create(context.Background(), f.adminID, req, media)
	require.NoError(t, err)
	return resp
}

func TestPostService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("club admin can post", func(t *testing.T) {
		f := newPostServiceForTest(t)
		resp := f.createPost(t, &dto.CreatePostRequest{ClubID: f.clubID, Content: "Welcome"}, nil)
		assert.Equal(t, "Welcome", resp.Content)
		assert.Empty(t, resp.Likes)
		assert.Nil(t, resp.Event)
	})

	t.Run("non-admin of the club is forbidden", func(t *testing.T) {
		f := newPostServiceForTest(t)
		outsider := seedUser(f.userRepo, "Outsider", "outsider@campus.edu")

		_, err := f.svc.Create(ctx, outsider.ID,
			&dto.CreatePostRequest{ClubID: f.clubID, Content: "Hi"}, nil)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("admin set membership, not role, grants posting", func(t *testing.T) {
		f := newPostServiceForTest(t)
		_, err := f.svc.Create(ctx, 999,
			&dto.CreatePostRequest{ClubID: f.clubID, Content: "Announcement"}, nil)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("content or media is required", func(t *testing.T) {
		f := newPostServiceForTest(t)
		_, err := f.svc.Create(ctx, f.adminID,
			&dto.CreatePostRequest{ClubID: f.clubID, Content: "   "}, nil)
		assert.ErrorIs(t, err, apperrors.ErrValidation)

		_, err = f.svc.Create(ctx, f.adminID,
			&dto.CreatePostRequest{ClubID: f.clubID}, []string{"uploads/pic.jpg"})
		assert.NoError(t, err)
	})

	t.Run("event posts need complete event fields", func(t *testing.T) {
		f := newPostServiceForTest(t)

		_, err := f.svc.Create(ctx, f.adminID, &dto.CreatePostRequest{
			ClubID:    f.clubID,
			Content:   "Tournament",
			IsEvent:   true,
			EventName: "Spring Open",
		}, nil)
		assert.ErrorIs(t, err, apperrors.ErrValidation)

		_, err = f.svc.Create(ctx, f.adminID, &dto.CreatePostRequest{
			ClubID:    f.clubID,
			Content:   "Tournament",
			IsEvent:   true,
			EventName: "Spring Open",
			EventDate: "not-a-date",
			Location:  "Main hall",
		}, nil)
		assert.ErrorIs(t, err, apperrors.ErrValidation)

		resp, err := f.svc.Create(ctx, f.adminID, &dto.CreatePostRequest{
			ClubID:    f.clubID,
			Content:   "Tournament",
			IsEvent:   true,
			EventName: "Spring Open",
			EventDate: "2026-04-12T14:00:00Z",
			Location:  "Main hall",
		}, nil)
		require.NoError(t, err)
		require.NotNil(t, resp.Event)
		assert.Equal(t, "Spring Open", resp.Event.EventName)
		assert.Equal(t, time.Date(2026, 4, 12, 14, 0, 0, 0, time.UTC), resp.Event.EventDate)
	})

	t.Run("unknown club is not found", func(t *testing.T) {
		f := newPostServiceForTest(t)
		_, err := f.svc.Create(ctx, f.adminID,
			&dto.CreatePostRequest{ClubID: 999, Content: "Hi"}, nil)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestPostService_Reactions(t *testing.T) {
	ctx := context.Background()

	t.Run("likes are idempotent per user", func(t *testing.T) {
		f := newPostServiceForTest(t)
		post := f.createPost(t, &dto.CreatePostRequest{ClubID: f.clubID, Content: "Hi"}, nil)

		require.NoError(t, f.svc.Like(ctx, post.ID, 10))
		require.NoError(t, f.svc.Like(ctx, post.ID, 10))
		require.NoError(t, f.svc.Like(ctx, post.ID, 11))

		got, err := f.svc.GetByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, []int64{10, 11}, got.Likes)
	})

	t.Run("interested and going require an event post", func(t *testing.T) {
		f := newPostServiceForTest(t)
		post := f.createPost(t, &dto.CreatePostRequest{ClubID: f.clubID, Content: "Hi"}, nil)

		err := f.svc.MarkInterested(ctx, post.ID, 10)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
		err = f.svc.MarkGoing(ctx, post.ID, 10)
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("event reactions land in the event block", func(t *testing.T) {
		f := newPostServiceForTest(t)
		post := f.createPost(t, &dto.CreatePostRequest{
			ClubID:    f.clubID,
			Content:   "Tournament",
			IsEvent:   true,
			EventName: "Spring Open",
			EventDate: "2026-04-12T14:00:00Z",
			Location:  "Main hall",
		}, nil)

		require.NoError(t, f.svc.MarkInterested(ctx, post.ID, 10))
		require.NoError(t, f.svc.MarkGoing(ctx, post.ID, 11))

		got, err := f.svc.GetByID(ctx, post.ID)
		require.NoError(t, err)
		require.NotNil(t, got.Event)
		assert.Equal(t, []int64{10}, got.Event.Interested)
		assert.Equal(t, []int64{11}, got.Event.Going)
	})

	t.Run("reacting to a missing post is not found", func(t *testing.T) {
		f := newPostServiceForTest(t)
		err := f.svc.Like(ctx, 999, 10)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestPostService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("replacing media deletes the old files", func(t *testing.T) {
		f := newPostServiceForTest(t)
		post := f.createPost(t, &dto.CreatePostRequest{ClubID: f.clubID, Content: "Hi"},
			[]string{"uploads/old1.jpg", "uploads/old2.jpg"})

		updated, err := f.svc.Update(ctx, post.ID, f.adminID,
			&dto.UpdatePostRequest{}, []string{"uploads/new.jpg"})
		require.NoError(t, err)
		assert.Equal(t, []string{"uploads/new.jpg"}, updated.Media)
		assert.ElementsMatch(t, []string{"uploads/old1.jpg", "uploads/old2.jpg"}, f.storage.deleted)
	})

	t.Run("non-admin caller is forbidden", func(t *testing.T) {
		f := newPostServiceForTest(t)
		post := f.createPost(t, &dto.CreatePostRequest{ClubID: f.clubID, Content: "Hi"}, nil)

		content := "Edited"
		_, err := f.svc.Update(ctx, post.ID, 999,
			&dto.UpdatePostRequest{Content: &content}, nil)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("event fields can be edited on an event post", func(t *testing.T) {
		f := newPostServiceForTest(t)
		post := f.createPost(t, &dto.CreatePostRequest{
			ClubID:    f.clubID,
			Content:   "Tournament",
			IsEvent:   true,
			EventName: "Spring Open",
			EventDate: "2026-04-12T14:00:00Z",
			Location:  "Main hall",
		}, nil)

		location := "Room 101"
		updated, err := f.svc.Update(ctx, post.ID, f.adminID,
			&dto.UpdatePostRequest{Location: &location}, nil)
		require.NoError(t, err)
		require.NotNil(t, updated.Event)
		assert.Equal(t, "Room 101", updated.Event.Location)
	})
}

func TestPostService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("removes the post tree and cleans up media", func(t *testing.T) {
		f := newPostServiceForTest(t)
		post := f.createPost(t, &dto.CreatePostRequest{ClubID: f.clubID, Content: "Hi"},
			[]string{"uploads/post.jpg"})

		comment, err := f.svc.AddComment(ctx, post.ID, 10, "Nice", []string{"uploads/comment.jpg"})
		require.NoError(t, err)
		_, err = f.svc.AddReply(ctx, comment.ID, 11, "Agreed", []string{"uploads/reply.jpg"})
		require.NoError(t, err)

		require.NoError(t, f.svc.Delete(ctx, post.ID, f.adminID))

		assert.ElementsMatch(t,
			[]string{"uploads/post.jpg", "uploads/comment.jpg", "uploads/reply.jpg"},
			f.storage.deleted)

		_, err = f.svc.GetByID(ctx, post.ID)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestPostService_Comments(t *testing.T) {
	ctx := context.Background()

	t.Run("empty comment is rejected", func(t *testing.T) {
		f := newPostServiceForTest(t)
		post := f.createPost(t, &dto.CreatePostRequest{ClubID: f.clubID, Content: "Hi"}, nil)

		_, err := f.svc.AddComment(ctx, post.ID, 10, "   ", nil)
		assert.ErrorIs(t, err, apperrors.ErrValidation)

		// Attached media does not excuse empty content.
		_, err = f.svc.AddComment(ctx, post.ID, 10, "   ", []string{"uploads/pic.jpg"})
		assert.ErrorIs(t, err, apperrors.ErrValidation)

		_, err = f.svc.AddComment(ctx, post.ID, 10, "Look", []string{"uploads/pic.jpg"})
		assert.NoError(t, err)
	})

	t.Run("only the author may edit a comment", func(t *testing.T) {
		f := newPostServiceForTest(t)
		post := f.createPost(t, &dto.CreatePostRequest{ClubID: f.clubID, Content: "Hi"}, nil)
		author := seedUser(f.userRepo, "Author", "author@campus.edu")

		comment, err := f.svc.AddComment(ctx, post.ID, author.ID, "First", nil)
		require.NoError(t, err)

		_, err = f.svc.UpdateComment(ctx, comment.ID, author.ID+1, "Hijacked")
		assert.ErrorIs(t, err, apperrors.ErrForbidden)

		updated, err := f.svc.UpdateComment(ctx, comment.ID, author.ID, "Edited")
		require.NoError(t, err)
		assert.Equal(t, "Edited", updated.Content)
	})

	t.Run("only the author may delete a comment", func(t *testing.T) {
		f := newPostServiceForTest(t)
		post := f.createPost(t, &dto.CreatePostRequest{ClubID: f.clubID, Content: "Hi"}, nil)

		comment, err := f.svc.AddComment(ctx, post.ID, 10, "Spam", nil)
		require.NoError(t, err)

		err = f.svc.DeleteComment(ctx, comment.ID, 999)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)

		require.NoError(t, f.svc.DeleteComment(ctx, comment.ID, 10))
	})

	t.Run("replies nest under comments in post detail", func(t *testing.T) {
		f := newPostServiceForTest(t)
		post := f.createPost(t, &dto.CreatePostRequest{ClubID: f.clubID, Content: "Hi"}, nil)

		comment, err := f.svc.AddComment(ctx, post.ID, 10, "First", nil)
		require.NoError(t, err)
		_, err = f.svc.AddReply(ctx, comment.ID, 11, "Second", nil)
		require.NoError(t, err)

		got, err := f.svc.GetByID(ctx, post.ID)
		require.NoError(t, err)
		require.Len(t, got.Comments, 1)
		require.Len(t, got.Comments[0].Replies, 1)
		assert.Equal(t, "Second", got.Comments[0].Replies[0].Content)
	})

	t.Run("deleting a comment removes its replies and media", func(t *testing.T) {
		f := newPostServiceForTest(t)
		post := f.createPost(t, &dto.CreatePostRequest{ClubID: f.clubID, Content: "Hi"}, nil)

		comment, err := f.svc.AddComment(ctx, post.ID, 10, "First", []string{"uploads/c.jpg"})
		require.NoError(t, err)
		reply, err := f.svc.AddReply(ctx, comment.ID, 11, "Second", []string{"uploads/r.jpg"})
		require.NoError(t, err)

		require.NoError(t, f.svc.DeleteComment(ctx, comment.ID, 10))

		assert.ElementsMatch(t, []string{"uploads/c.jpg", "uploads/r.jpg"}, f.storage.deleted)

		_, err = f.svc.UpdateReply(ctx, reply.ID, 11, "Still there?")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}

func TestPostService_Replies(t *testing.T) {
	ctx := context.Background()

	t.Run("only the author may edit a reply", func(t *testing.T) {
		f := newPostServiceForTest(t)
		post := f.createPost(t, &dto.CreatePostRequest{ClubID: f.clubID, Content: "Hi"}, nil)
		comment, err := f.svc.AddComment(ctx, post.ID, 10, "First", nil)
		require.NoError(t, err)
		reply, err := f.svc.AddReply(ctx, comment.ID, 11, "Second", nil)
		require.NoError(t, err)

		_, err = f.svc.UpdateReply(ctx, reply.ID, 12, "Hijacked")
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
	})

	t.Run("only the author may delete a reply", func(t *testing.T) {
		f := newPostServiceForTest(t)
		post := f.createPost(t, &dto.CreatePostRequest{ClubID: f.clubID, Content: "Hi"}, nil)
		comment, err := f.svc.AddComment(ctx, post.ID, 10, "First", nil)
		require.NoError(t, err)
		reply, err := f.svc.AddReply(ctx, comment.ID, 11, "Second", nil)
		require.NoError(t, err)

		err = f.svc.DeleteReply(ctx, reply.ID, 12)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)

		require.NoError(t, f.svc.DeleteReply(ctx, reply.ID, 11))
	})

	t.Run("empty reply is rejected even with media", func(t *testing.T) {
		f := newPostServiceForTest(t)
		post := f.createPost(t, &dto.CreatePostRequest{ClubID: f.clubID, Content: "Hi"}, nil)
		comment, err := f.svc.AddComment(ctx, post.ID, 10, "First", nil)
		require.NoError(t, err)

		_, err = f.svc.AddReply(ctx, comment.ID, 11, "   ", []string{"uploads/r.jpg"})
		assert.ErrorIs(t, err, apperrors.ErrValidation)
	})

	t.Run("replying to a missing comment is not found", func(t *testing.T) {
		f := newPostServiceForTest(t)
		_, err := f.svc.AddReply(ctx, 999, 10, "Hello", nil)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})
}
