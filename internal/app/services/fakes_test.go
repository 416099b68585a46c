package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/campuslink/clubnet/internal/app/models"
)

// In-memory repository implementations used across the service tests.

type fakeUserRepo struct {
	nextID    int64
	users     map[int64]*models.User
	createErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: make(map[int64]*models.User)}
}

func (r *fakeUserRepo) add(user *models.User) *models.User {
	u := *user
	u.ID = r.nextID
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	u.UpdatedAt = u.CreatedAt
	r.users[u.ID] = &u
	r.nextID++
	return &u
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) (int64, error) {
	if r.createErr != nil {
		return 0, r.createErr
	}
	created := r.add(user)
	user.ID = created.ID
	user.CreatedAt = created.CreatedAt
	user.UpdatedAt = created.UpdatedAt
	return created.ID, nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) GetByIDs(_ context.Context, ids []int64) ([]*models.User, error) {
	var out []*models.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			copied := *u
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) EmailExists(_ context.Context, email string) (bool, error) {
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) StudentIDExists(_ context.Context, studentID string) (bool, error) {
	for _, u := range r.users {
		if u.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) List(_ context.Context, excludeID int64, page, limit int) ([]*models.User, int64, error) {
	var all []*models.User
	for _, u := range r.users {
		if u.ID == excludeID {
			continue
		}
		copied := *u
		all = append(all, &copied)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	offset := (page - 1) * limit
	if offset >= len(all) {
		return []*models.User{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeUserRepo) Search(_ context.Context, query string) ([]*models.User, error) {
	q := strings.ToLower(query)
	var out []*models.User
	for _, u := range r.users {
		if strings.Contains(strings.ToLower(u.FirstName), q) ||
			strings.Contains(strings.ToLower(u.LastName), q) ||
			strings.Contains(strings.ToLower(u.Email), q) {
			copied := *u
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	stored, ok := r.users[user.ID]
	if !ok {
		return fmt.Errorf("user %d not found", user.ID)
	}
	copied := *user
	copied.CreatedAt = stored.CreatedAt
	copied.UpdatedAt = time.Now()
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, id int64, hashedPassword string) error {
	if u, ok := r.users[id]; ok {
		u.Password = hashedPassword
	}
	return nil
}

func (r *fakeUserRepo) UpdateProfileImage(_ context.Context, id int64, imagePath string) error {
	if u, ok := r.users[id]; ok {
		u.ProfileImage = imagePath
	}
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id int64) error {
	delete(r.users, id)
	return nil
}

type fakeFollowRepo struct {
	follows map[[2]int64]bool // [userID, clubID]
}

func newFakeFollowRepo() *fakeFollowRepo {
	return &fakeFollowRepo{follows: make(map[[2]int64]bool)}
}

func (r *fakeFollowRepo) Add(_ context.Context, userID, clubID int64) error {
	r.follows[[2]int64{userID, clubID}] = true
	return nil
}

func (r *fakeFollowRepo) Remove(_ context.Context, userID, clubID int64) error {
	delete(r.follows, [2]int64{userID, clubID})
	return nil
}

func (r *fakeFollowRepo) IsFollowing(_ context.Context, userID, clubID int64) (bool, error) {
	return r.follows[[2]int64{userID, clubID}], nil
}

func (r *fakeFollowRepo) ClubIDsForUser(_ context.Context, userID int64) ([]int64, error) {
	var out []int64
	for key := range r.follows {
		if key[0] == userID {
			out = append(out, key[1])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (r *fakeFollowRepo) CountForClub(_ context.Context, clubID int64) (int64, error) {
	var n int64
	for key := range r.follows {
		if key[1] == clubID {
			n++
		}
	}
	return n, nil
}

type fakeFriendRepo struct {
	nextID   int64
	requests map[int64]*models.FriendRequest
	friends  map[[2]int64]bool // directed pairs, both directions stored
}

func newFakeFriendRepo() *fakeFriendRepo {
	return &fakeFriendRepo{
		nextID:   1,
		requests: make(map[int64]*models.FriendRequest),
		friends:  make(map[[2]int64]bool),
	}
}

func (r *fakeFriendRepo) CreateRequest(_ context.Context, requesterID, recipientID int64) (*models.FriendRequest, error) {
	req := &models.FriendRequest{
		ID:          r.nextID,
		RequesterID: requesterID,
		RecipientID: recipientID,
		Status:      models.FriendRequestPending,
		CreatedAt:   time.Now(),
	}
	r.requests[req.ID] = req
	r.nextID++
	copied := *req
	return &copied, nil
}

func (r *fakeFriendRepo) GetRequestByID(_ context.Context, id int64) (*models.FriendRequest, error) {
	req, ok := r.requests[id]
	if !ok {
		return nil, nil
	}
	copied := *req
	return &copied, nil
}

func (r *fakeFriendRepo) PendingBetween(_ context.Context, userA, userB int64) (bool, error) {
	for _, req := range r.requests {
		if (req.RequesterID == userA && req.RecipientID == userB) ||
			(req.RequesterID == userB && req.RecipientID == userA) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeFriendRepo) DeleteRequest(_ context.Context, id int64) error {
	delete(r.requests, id)
	return nil
}

func (r *fakeFriendRepo) ListIncoming(_ context.Context, userID int64) ([]*models.FriendRequest, error) {
	var out []*models.FriendRequest
	for _, req := range r.requests {
		if req.RecipientID == userID {
			copied := *req
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeFriendRepo) ListOutgoing(_ context.Context, userID int64) ([]*models.FriendRequest, error) {
	var out []*models.FriendRequest
	for _, req := range r.requests {
		if req.RequesterID == userID {
			copied := *req
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeFriendRepo) AreFriends(_ context.Context, userA, userB int64) (bool, error) {
	return r.friends[[2]int64{userA, userB}], nil
}

func (r *fakeFriendRepo) AddFriendship(_ context.Context, requestID, userA, userB int64) error {
	r.friends[[2]int64{userA, userB}] = true
	r.friends[[2]int64{userB, userA}] = true
	delete(r.requests, requestID)
	return nil
}

func (r *fakeFriendRepo) RemoveFriendship(_ context.Context, userA, userB int64) error {
	delete(r.friends, [2]int64{userA, userB})
	delete(r.friends, [2]int64{userB, userA})
	for id, req := range r.requests {
		if (req.RequesterID == userA && req.RecipientID == userB) ||
			(req.RequesterID == userB && req.RecipientID == userA) {
			delete(r.requests, id)
		}
	}
	return nil
}

func (r *fakeFriendRepo) FriendIDs(_ context.Context, userID int64) ([]int64, error) {
	var out []int64
	for key := range r.friends {
		if key[0] == userID {
			out = append(out, key[1])
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

type fakeClubRepo struct {
	nextID    int64
	clubs     map[int64]*models.Club
	admins    map[int64][]int64 // clubID -> admin user IDs in insertion order
	createErr error
}

func newFakeClubRepo() *fakeClubRepo {
	return &fakeClubRepo{
		nextID: 1,
		clubs:  make(map[int64]*models.Club),
		admins: make(map[int64][]int64),
	}
}

func (r *fakeClubRepo) Create(_ context.Context, club *models.Club, creatorID int64) (int64, error) {
	if r.createErr != nil {
		return 0, r.createErr
	}
	club.ID = r.nextID
	club.CreatedAt = time.Now()
	club.UpdatedAt = club.CreatedAt
	club.AdminIDs = []int64{creatorID}
	copied := *club
	r.clubs[copied.ID] = &copied
	r.admins[copied.ID] = []int64{creatorID}
	r.nextID++
	return copied.ID, nil
}

func (r *fakeClubRepo) GetByID(_ context.Context, id int64) (*models.Club, error) {
	c, ok := r.clubs[id]
	if !ok {
		return nil, nil
	}
	copied := *c
	copied.AdminIDs = append([]int64{}, r.admins[id]...)
	return &copied, nil
}

func (r *fakeClubRepo) NameExists(_ context.Context, name string) (bool, error) {
	for _, c := range r.clubs {
		if c.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeClubRepo) Update(_ context.Context, club *models.Club) error {
	stored, ok := r.clubs[club.ID]
	if !ok {
		return fmt.Errorf("club %d not found", club.ID)
	}
	stored.Name = club.Name
	stored.Description = club.Description
	stored.UpdatedAt = time.Now()
	return nil
}

func (r *fakeClubRepo) Delete(_ context.Context, id int64) error {
	delete(r.clubs, id)
	delete(r.admins, id)
	return nil
}

func (r *fakeClubRepo) List(_ context.Context, page, limit int) ([]*models.Club, int64, error) {
	var all []*models.Club
	for id := range r.clubs {
		c, _ := r.GetByID(context.Background(), id)
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	total := int64(len(all))
	offset := (page - 1) * limit
	if offset >= len(all) {
		return []*models.Club{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakeClubRepo) Search(_ context.Context, query string) ([]*models.Club, error) {
	q := strings.ToLower(query)
	var out []*models.Club
	for id, c := range r.clubs {
		if strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Description), q) {
			copied, _ := r.GetByID(context.Background(), id)
			out = append(out, copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeClubRepo) IsAdmin(_ context.Context, clubID, userID int64) (bool, error) {
	for _, id := range r.admins[clubID] {
		if id == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeClubRepo) AddAdmin(_ context.Context, clubID, userID int64) error {
	for _, id := range r.admins[clubID] {
		if id == userID {
			return nil
		}
	}
	r.admins[clubID] = append(r.admins[clubID], userID)
	return nil
}

func (r *fakeClubRepo) RemoveAdmin(_ context.Context, clubID, userID int64) error {
	ids := r.admins[clubID]
	for i, id := range ids {
		if id == userID {
			r.admins[clubID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *fakeClubRepo) AdminCount(_ context.Context, clubID int64) (int64, error) {
	return int64(len(r.admins[clubID])), nil
}

func (r *fakeClubRepo) UpdateImage(_ context.Context, id int64, imagePath string) error {
	if c, ok := r.clubs[id]; ok {
		c.ClubImage = imagePath
	}
	return nil
}

type reactionKey struct {
	postID int64
	userID int64
	kind   models.ReactionKind
}

type fakePostRepo struct {
	nextID    int64
	posts     map[int64]*models.Post
	comments  map[int64]*models.Comment
	replies   map[int64]*models.Reply
	reactions map[reactionKey]bool
}

func newFakePostRepo() *fakePostRepo {
	return &fakePostRepo{
		nextID:    1,
		posts:     make(map[int64]*models.Post),
		comments:  make(map[int64]*models.Comment),
		replies:   make(map[int64]*models.Reply),
		reactions: make(map[reactionKey]bool),
	}
}

func (r *fakePostRepo) Create(_ context.Context, post *models.Post) (int64, error) {
	post.ID = r.nextID
	post.CreatedAt = time.Now().Add(time.Duration(r.nextID) * time.Millisecond)
	post.UpdatedAt = post.CreatedAt
	copied := *post
	r.posts[copied.ID] = &copied
	r.nextID++
	return copied.ID, nil
}

func (r *fakePostRepo) GetByID(_ context.Context, id int64) (*models.Post, error) {
	p, ok := r.posts[id]
	if !ok {
		return nil, nil
	}
	copied := *p
	return &copied, nil
}

func (r *fakePostRepo) Update(_ context.Context, post *models.Post) error {
	stored, ok := r.posts[post.ID]
	if !ok {
		return fmt.Errorf("post %d not found", post.ID)
	}
	copied := *post
	copied.CreatedAt = stored.CreatedAt
	copied.UpdatedAt = time.Now()
	r.posts[post.ID] = &copied
	return nil
}

func (r *fakePostRepo) Delete(_ context.Context, id int64) error {
	delete(r.posts, id)
	for cid, c := range r.comments {
		if c.PostID == id {
			for rid, reply := range r.replies {
				if reply.CommentID == cid {
					delete(r.replies, rid)
				}
			}
			delete(r.comments, cid)
		}
	}
	return nil
}

func (r *fakePostRepo) ListByClubIDs(_ context.Context, clubIDs []int64, page, limit int) ([]*models.Post, int64, error) {
	if len(clubIDs) == 0 {
		return []*models.Post{}, 0, nil
	}
	wanted := make(map[int64]bool, len(clubIDs))
	for _, id := range clubIDs {
		wanted[id] = true
	}
	var all []*models.Post
	for _, p := range r.posts {
		if wanted[p.ClubID] {
			copied := *p
			all = append(all, &copied)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	total := int64(len(all))
	offset := (page - 1) * limit
	if offset >= len(all) {
		return []*models.Post{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *fakePostRepo) ListByClub(_ context.Context, clubID int64) ([]*models.Post, error) {
	var out []*models.Post
	for _, p := range r.posts {
		if p.ClubID == clubID {
			copied := *p
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakePostRepo) Search(_ context.Context, query string) ([]*models.Post, error) {
	q := strings.ToLower(query)
	var out []*models.Post
	for _, p := range r.posts {
		if strings.Contains(strings.ToLower(p.Content), q) {
			copied := *p
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakePostRepo) MediaForClub(_ context.Context, clubID int64) ([]string, error) {
	var out []string
	for _, p := range r.posts {
		if p.ClubID != clubID {
			continue
		}
		out = append(out, p.Media...)
		for _, c := range r.comments {
			if c.PostID != p.ID {
				continue
			}
			out = append(out, c.Media...)
			for _, reply := range r.replies {
				if reply.CommentID == c.ID {
					out = append(out, reply.Media...)
				}
			}
		}
	}
	return out, nil
}

func (r *fakePostRepo) AddReaction(_ context.Context, postID, userID int64, kind models.ReactionKind) error {
	r.reactions[reactionKey{postID, userID, kind}] = true
	return nil
}

func (r *fakePostRepo) ReactionsForPost(_ context.Context, postID int64) (map[models.ReactionKind][]int64, error) {
	out := make(map[models.ReactionKind][]int64)
	for key := range r.reactions {
		if key.postID == postID {
			out[key.kind] = append(out[key.kind], key.userID)
		}
	}
	for kind := range out {
		sort.Slice(out[kind], func(i, j int) bool { return out[kind][i] < out[kind][j] })
	}
	return out, nil
}

func (r *fakePostRepo) CreateComment(_ context.Context, comment *models.Comment) (int64, error) {
	comment.ID = r.nextID
	comment.CreatedAt = time.Now()
	comment.UpdatedAt = comment.CreatedAt
	copied := *comment
	r.comments[copied.ID] = &copied
	r.nextID++
	return copied.ID, nil
}

func (r *fakePostRepo) GetCommentByID(_ context.Context, id int64) (*models.Comment, error) {
	c, ok := r.comments[id]
	if !ok {
		return nil, nil
	}
	copied := *c
	return &copied, nil
}

func (r *fakePostRepo) UpdateComment(_ context.Context, comment *models.Comment) error {
	stored, ok := r.comments[comment.ID]
	if !ok {
		return fmt.Errorf("comment %d not found", comment.ID)
	}
	copied := *comment
	copied.CreatedAt = stored.CreatedAt
	copied.UpdatedAt = time.Now()
	r.comments[comment.ID] = &copied
	return nil
}

func (r *fakePostRepo) DeleteComment(_ context.Context, id int64) error {
	delete(r.comments, id)
	for rid, reply := range r.replies {
		if reply.CommentID == id {
			delete(r.replies, rid)
		}
	}
	return nil
}

func (r *fakePostRepo) CommentsForPost(_ context.Context, postID int64) ([]*models.Comment, error) {
	var out []*models.Comment
	for _, c := range r.comments {
		if c.PostID == postID {
			copied := *c
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakePostRepo) CreateReply(_ context.Context, reply *models.Reply) (int64, error) {
	reply.ID = r.nextID
	reply.CreatedAt = time.Now()
	reply.UpdatedAt = reply.CreatedAt
	copied := *reply
	r.replies[copied.ID] = &copied
	r.nextID++
	return copied.ID, nil
}

func (r *fakePostRepo) GetReplyByID(_ context.Context, id int64) (*models.Reply, error) {
	reply, ok := r.replies[id]
	if !ok {
		return nil, nil
	}
	copied := *reply
	return &copied, nil
}

func (r *fakePostRepo) UpdateReply(_ context.Context, reply *models.Reply) error {
	stored, ok := r.replies[reply.ID]
	if !ok {
		return fmt.Errorf("reply %d not found", reply.ID)
	}
	copied := *reply
	copied.CreatedAt = stored.CreatedAt
	copied.UpdatedAt = time.Now()
	r.replies[reply.ID] = &copied
	return nil
}

func (r *fakePostRepo) DeleteReply(_ context.Context, id int64) error {
	delete(r.replies, id)
	return nil
}

func (r *fakePostRepo) RepliesForComments(_ context.Context, commentIDs []int64) ([]*models.Reply, error) {
	wanted := make(map[int64]bool, len(commentIDs))
	for _, id := range commentIDs {
		wanted[id] = true
	}
	var out []*models.Reply
	for _, reply := range r.replies {
		if wanted[reply.CommentID] {
			copied := *reply
			out = append(out, &copied)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeMessageRepo struct {
	nextID   int64
	messages []*models.Message
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{nextID: 1}
}

func (r *fakeMessageRepo) Create(_ context.Context, message *models.Message) (int64, error) {
	m := *message
	m.ID = r.nextID
	m.CreatedAt = time.Now().Add(time.Duration(r.nextID) * time.Millisecond)
	r.messages = append(r.messages, &m)
	r.nextID++
	message.ID = m.ID
	message.CreatedAt = m.CreatedAt
	return m.ID, nil
}

func (r *fakeMessageRepo) History(_ context.Context, userA, userB int64, limit int) ([]*models.Message, error) {
	var matched []*models.Message
	for _, m := range r.messages {
		if (m.SenderID == userA && m.RecipientID == userB) ||
			(m.SenderID == userB && m.RecipientID == userA) {
			copied := *m
			matched = append(matched, &copied)
		}
	}
	if len(matched) > limit {
		matched = matched[len(matched)-limit:]
	}
	return matched, nil
}

// fakeStorage records deletions so tests can assert on media cleanup.
type fakeStorage struct {
	saved   []string
	deleted []string
}

func (s *fakeStorage) SaveFile(file *multipart.FileHeader) (string, error) {
	s.saved = append(s.saved, file.Filename)
	return file.Filename, nil
}

func (s *fakeStorage) DeleteFile(path string) error {
	s.deleted = append(s.deleted, path)
	return nil
}

func (s *fakeStorage) GetFullPath(path string) string {
	return path
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}
