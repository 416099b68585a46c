package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campuslink/clubnet/internal/app/models"
)

// PostRepository handles database operations for posts, their
// reactions, comments and replies.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id int64) error
	ListByClubIDs(ctx context.Context, clubIDs []int64, page, limit int) ([]*models.Post, int64, error)
	ListByClub(ctx context.Context, clubID int64) ([]*models.Post, error)
	Search(ctx context.Context, query string) ([]*models.Post, error)
	MediaForClub(ctx context.Context, clubID int64) ([]string, error)

	AddReaction(ctx context.Context, postID, userID int64, kind models.ReactionKind) error
	ReactionsForPost(ctx context.Context, postID int64) (map[models.ReactionKind][]int64, error)

	CreateComment(ctx context.Context, comment *models.Comment) (int64, error)
	GetCommentByID(ctx context.Context, id int64) (*models.Comment, error)
	UpdateComment(ctx context.Context, comment *models.Comment) error
	DeleteComment(ctx context.Context, id int64) error
	CommentsForPost(ctx context.Context, postID int64) ([]*models.Comment, error)

	CreateReply(ctx context.Context, reply *models.Reply) (int64, error)
	GetReplyByID(ctx context.Context, id int64) (*models.Reply, error)
	UpdateReply(ctx context.Context, reply *models.Reply) error
	DeleteReply(ctx context.Context, id int64) error
	RepliesForComments(ctx context.Context, commentIDs []int64) ([]*models.Reply, error)
}

type postRepository struct {
	db *pgxpool.Pool
}

// NewPostRepository creates a new PostRepository backed by PostgreSQL.
func NewPostRepository(db *pgxpool.Pool) PostRepository {
	return &postRepository{db: db}
}

const postColumns = `id, club_id, author_id, content, media, is_event, event_name, event_date, location, created_at, updated_at`

func (r *postRepository) Create(ctx context.Context, post *models.Post) (int64, error) {
	query := `
		INSERT INTO posts (club_id, author_id, content, media, is_event, event_name, event_date, location)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	var eventName, location *string
	var eventDate interface{}
	if post.IsEvent && post.Event != nil {
		eventName = &post.Event.EventName
		eventDate = post.Event.EventDate
		location = &post.Event.Location
	}

	err := r.db.QueryRow(ctx, query,
		post.ClubID,
		post.AuthorID,
		post.Content,
		post.Media,
		post.IsEvent,
		eventName,
		eventDate,
		location,
	).Scan(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("error creating post: %w", err)
	}

	return post.ID, nil
}

func scanPost(row pgx.Row) (*models.Post, error) {
	var post models.Post
	var eventName, location *string
	var eventDate *time.Time

	err := row.Scan(
		&post.ID,
		&post.ClubID,
		&post.AuthorID,
		&post.Content,
		&post.Media,
		&post.IsEvent,
		&eventName,
		&eventDate,
		&location,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if post.Media == nil {
		post.Media = []string{}
	}
	if post.IsEvent {
		event := models.EventDetails{}
		if eventName != nil {
			event.EventName = *eventName
		}
		if eventDate != nil {
			event.EventDate = *eventDate
		}
		if location != nil {
			event.Location = *location
		}
		post.Event = &event
	}
	return &post, nil
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = $1`

	post, err := scanPost(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving post: %w", err)
	}
	return post, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	query := `
		UPDATE posts
		SET content = $1, media = $2, event_name = $3, event_date = $4, location = $5, updated_at = NOW()
		WHERE id = $6
	`

	var eventName, location *string
	var eventDate interface{}
	if post.IsEvent && post.Event != nil {
		eventName = &post.Event.EventName
		eventDate = post.Event.EventDate
		location = &post.Event.Location
	}

	result, err := r.db.Exec(ctx, query,
		post.Content,
		post.Media,
		eventName,
		eventDate,
		location,
		post.ID,
	)
	if err != nil {
		return fmt.Errorf("error updating post: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("no post found with ID %d", post.ID)
	}
	return nil
}

// Delete removes the post; comments, replies and reactions go with it
// via FK cascades.
func (r *postRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting post: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("no post found with ID %d", id)
	}
	return nil
}

// ListByClubIDs returns posts from the given clubs, newest first.
func (r *postRepository) ListByClubIDs(ctx context.Context, clubIDs []int64, page, limit int) ([]*models.Post, int64, error) {
	if len(clubIDs) == 0 {
		return []*models.Post{}, 0, nil
	}

	var total int64
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM posts WHERE club_id = ANY($1)`, clubIDs).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting posts: %w", err)
	}

	offset := (page - 1) * limit
	query := `
		SELECT ` + postColumns + `
		FROM posts
		WHERE club_id = ANY($1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, clubIDs, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("error listing posts: %w", err)
	}
	defer rows.Close()

	posts, err := collectPosts(rows)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) ListByClub(ctx context.Context, clubID int64) ([]*models.Post, error) {
	query := `
		SELECT ` + postColumns + `
		FROM posts
		WHERE club_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, clubID)
	if err != nil {
		return nil, fmt.Errorf("error listing club posts: %w", err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

func (r *postRepository) Search(ctx context.Context, query string) ([]*models.Post, error) {
	pattern := "%" + query + "%"
	queryBuilder := squirrel.Select(postColumns).
		From("posts").
		Where(squirrel.Or{
			squirrel.ILike{"content": pattern},
			squirrel.ILike{"event_name": pattern},
		}).
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error searching posts: %w", err)
	}
	defer rows.Close()

	return collectPosts(rows)
}

// MediaForClub collects stored media paths for a club's posts,
// comments and replies, so files can be cleaned up before the club
// row cascades away.
func (r *postRepository) MediaForClub(ctx context.Context, clubID int64) ([]string, error) {
	query := `
		SELECT unnest(media) FROM posts WHERE club_id = $1
		UNION ALL
		SELECT unnest(c.media) FROM comments c JOIN posts p ON c.post_id = p.id WHERE p.club_id = $1
		UNION ALL
		SELECT unnest(rp.media) FROM replies rp
			JOIN comments c ON rp.comment_id = c.id
			JOIN posts p ON c.post_id = p.id
		WHERE p.club_id = $1
	`

	rows, err := r.db.Query(ctx, query, clubID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving club media: %w", err)
	}
	defer rows.Close()

	paths := []string{}
	for rows.Next() {
		var path string
		if err := rows.Scan(&path); err != nil {
			return nil, fmt.Errorf("error scanning media row: %w", err)
		}
		paths = append(paths, path)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating media rows: %w", err)
	}
	return paths, nil
}

func collectPosts(rows pgx.Rows) ([]*models.Post, error) {
	posts := []*models.Post{}
	for rows.Next() {
		post, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning post row: %w", err)
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating post rows: %w", err)
	}
	return posts, nil
}

// AddReaction records a reaction; repeating it is a no-op.
func (r *postRepository) AddReaction(ctx context.Context, postID, userID int64, kind models.ReactionKind) error {
	query := `
		INSERT INTO post_reactions (post_id, user_id, kind)
		VALUES ($1, $2, $3)
		ON CONFLICT (post_id, user_id, kind) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, postID, userID, kind)
	if err != nil {
		return fmt.Errorf("error adding reaction: %w", err)
	}
	return nil
}

func (r *postRepository) ReactionsForPost(ctx context.Context, postID int64) (map[models.ReactionKind][]int64, error) {
	rows, err := r.db.Query(ctx,
		`SELECT user_id, kind FROM post_reactions WHERE post_id = $1 ORDER BY created_at`, postID)
	if err != nil {
		return nil, fmt.Errorf("error retrieving reactions: %w", err)
	}
	defer rows.Close()

	reactions := map[models.ReactionKind][]int64{}
	for rows.Next() {
		var userID int64
		var kind models.ReactionKind
		if err := rows.Scan(&userID, &kind); err != nil {
			return nil, fmt.Errorf("error scanning reaction row: %w", err)
		}
		reactions[kind] = append(reactions[kind], userID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reaction rows: %w", err)
	}
	return reactions, nil
}

func (r *postRepository) CreateComment(ctx context.Context, comment *models.Comment) (int64, error) {
	query := `
		INSERT INTO comments (post_id, author_id, content, media)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		comment.PostID,
		comment.AuthorID,
		comment.Content,
		comment.Media,
	).Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("error creating comment: %w", err)
	}

	return comment.ID, nil
}

func (r *postRepository) GetCommentByID(ctx context.Context, id int64) (*models.Comment, error) {
	query := `
		SELECT id, post_id, author_id, content, media, created_at, updated_at
		FROM comments
		WHERE id = $1
	`

	var comment models.Comment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&comment.ID,
		&comment.PostID,
		&comment.AuthorID,
		&comment.Content,
		&comment.Media,
		&comment.CreatedAt,
		&comment.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving comment: %w", err)
	}
	if comment.Media == nil {
		comment.Media = []string{}
	}
	return &comment, nil
}

func (r *postRepository) UpdateComment(ctx context.Context, comment *models.Comment) error {
	result, err := r.db.Exec(ctx,
		`UPDATE comments SET content = $1, media = $2, updated_at = NOW() WHERE id = $3`,
		comment.Content, comment.Media, comment.ID)
	if err != nil {
		return fmt.Errorf("error updating comment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("no comment found with ID %d", comment.ID)
	}
	return nil
}

func (r *postRepository) DeleteComment(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting comment: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("no comment found with ID %d", id)
	}
	return nil
}

func (r *postRepository) CommentsForPost(ctx context.Context, postID int64) ([]*models.Comment, error) {
	query := `
		SELECT id, post_id, author_id, content, media, created_at, updated_at
		FROM comments
		WHERE post_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("error listing comments: %w", err)
	}
	defer rows.Close()

	comments := []*models.Comment{}
	for rows.Next() {
		var comment models.Comment
		err := rows.Scan(
			&comment.ID,
			&comment.PostID,
			&comment.AuthorID,
			&comment.Content,
			&comment.Media,
			&comment.CreatedAt,
			&comment.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning comment row: %w", err)
		}
		if comment.Media == nil {
			comment.Media = []string{}
		}
		comments = append(comments, &comment)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating comment rows: %w", err)
	}
	return comments, nil
}

func (r *postRepository) CreateReply(ctx context.Context, reply *models.Reply) (int64, error) {
	query := `
		INSERT INTO replies (comment_id, author_id, content, media)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		reply.CommentID,
		reply.AuthorID,
		reply.Content,
		reply.Media,
	).Scan(&reply.ID, &reply.CreatedAt, &reply.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("error creating reply: %w", err)
	}

	return reply.ID, nil
}

func (r *postRepository) GetReplyByID(ctx context.Context, id int64) (*models.Reply, error) {
	query := `
		SELECT id, comment_id, author_id, content, media, created_at, updated_at
		FROM replies
		WHERE id = $1
	`

	var reply models.Reply
	err := r.db.QueryRow(ctx, query, id).Scan(
		&reply.ID,
		&reply.CommentID,
		&reply.AuthorID,
		&reply.Content,
		&reply.Media,
		&reply.CreatedAt,
		&reply.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving reply: %w", err)
	}
	if reply.Media == nil {
		reply.Media = []string{}
	}
	return &reply, nil
}

func (r *postRepository) UpdateReply(ctx context.Context, reply *models.Reply) error {
	result, err := r.db.Exec(ctx,
		`UPDATE replies SET content = $1, media = $2, updated_at = NOW() WHERE id = $3`,
		reply.Content, reply.Media, reply.ID)
	if err != nil {
		return fmt.Errorf("error updating reply: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("no reply found with ID %d", reply.ID)
	}
	return nil
}

func (r *postRepository) DeleteReply(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM replies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting reply: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("no reply found with ID %d", id)
	}
	return nil
}

func (r *postRepository) RepliesForComments(ctx context.Context, commentIDs []int64) ([]*models.Reply, error) {
	if len(commentIDs) == 0 {
		return []*models.Reply{}, nil
	}

	query := `
		SELECT id, comment_id, author_id, content, media, created_at, updated_at
		FROM replies
		WHERE comment_id = ANY($1)
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, commentIDs)
	if err != nil {
		return nil, fmt.Errorf("error listing replies: %w", err)
	}
	defer rows.Close()

	replies := []*models.Reply{}
	for rows.Next() {
		var reply models.Reply
		err := rows.Scan(
			&reply.ID,
			&reply.CommentID,
			&reply.AuthorID,
			&reply.Content,
			&reply.Media,
			&reply.CreatedAt,
			&reply.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning reply row: %w", err)
		}
		if reply.Media == nil {
			reply.Media = []string{}
		}
		replies = append(replies, &reply)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reply rows: %w", err)
	}
	return replies, nil
}
