package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances.
type Repositories struct {
	UserRepository    UserRepository
	ClubRepository    ClubRepository
	FollowRepository  FollowRepository
	FriendRepository  FriendRepository
	PostRepository    PostRepository
	MessageRepository MessageRepository
}

// NewRepositories initializes all repositories.
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:    NewUserRepository(db),
		ClubRepository:    NewClubRepository(db),
		FollowRepository:  NewFollowRepository(db),
		FriendRepository:  NewFriendRepository(db),
		PostRepository:    NewPostRepository(db),
		MessageRepository: NewMessageRepository(db),
	}
}
