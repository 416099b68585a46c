package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/campuslink/clubnet/internal/app/controllers"
	"github.com/campuslink/clubnet/internal/app/models"
	"github.com/campuslink/clubnet/internal/middleware"
	"github.com/campuslink/clubnet/internal/pkg/websocket"
)

// SetupRouter wires all API routes onto the Gin engine.
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	clubController *controllers.ClubController,
	postController *controllers.PostController,
	friendController *controllers.FriendController,
	feedController *controllers.FeedController,
	searchController *controllers.SearchController,
	chatController *controllers.ChatController,
	chatHandler *websocket.ChatHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	api := router.Group("/api")

	// Public endpoints
	api.POST("/user/register", authController.Register)
	api.POST("/user/login", authController.Login)
	api.POST("/admin/login", authController.AdminLogin)

	// Everything below requires authentication
	authed := api.Group("")
	authed.Use(authMiddleware.JWTAuth())

	// Users
	authed.GET("/user/view/:userId", userController.ViewUser)
	authed.GET("/user/view-profile", userController.ViewProfile)
	authed.GET("/user/search", userController.SearchUsers)
	authed.POST("/user/change-password", userController.ChangePassword)
	authed.PUT("/user/profile/image", userController.UpdateProfileImage)

	// User administration
	admin := authed.Group("")
	admin.Use(authMiddleware.RoleAtLeast(models.RoleAdmin))
	admin.GET("/user/view", userController.ViewUsers)
	admin.PUT("/users/:userId", userController.UpdateUser)
	admin.DELETE("/users/:userId", userController.DeleteUser)

	// Clubs. Creation is reserved for site admins; day-to-day club
	// management is authorized per club in the service layer.
	admin.POST("/clubs", clubController.CreateClub)

	clubAdmin := authed.Group("")
	clubAdmin.Use(authMiddleware.RoleAtLeast(models.RoleClubAdmin))
	clubAdmin.PUT("/clubs/:clubId", clubController.UpdateClub)
	clubAdmin.PUT("/clubs/:clubId/image", clubController.UpdateClubImage)
	clubAdmin.DELETE("/clubs/:clubId", clubController.DeleteClub)

	authed.GET("/clubs", clubController.ListClubs)
	authed.GET("/clubs/:clubId", clubController.GetClub)
	authed.GET("/search-clubs", clubController.SearchClubs)
	authed.POST("/follow/:clubId", clubController.FollowClub)
	authed.POST("/unfollow/:clubId", clubController.UnfollowClub)
	authed.GET("/followed-clubs", clubController.FollowedClubs)

	// Posts and events
	clubAdmin.POST("/clubs/:clubId/posts", postController.CreatePost)
	clubAdmin.PUT("/posts/:postId", postController.UpdatePost)
	clubAdmin.DELETE("/posts/:postId", postController.DeletePost)

	authed.GET("/posts/:postId", postController.GetPost)
	authed.GET("/clubs/:clubId/posts", postController.ListClubPosts)
	authed.POST("/posts/:postId/like", postController.LikePost)
	authed.POST("/posts/:postId/share", postController.SharePost)
	authed.POST("/posts/:postId/interested", postController.MarkInterested)
	authed.POST("/posts/:postId/going", postController.MarkGoing)

	// Comments and replies
	authed.POST("/posts/:postId/comments", postController.AddComment)
	authed.PUT("/comments/:commentId", postController.UpdateComment)
	authed.DELETE("/comments/:commentId", postController.DeleteComment)
	authed.POST("/comments/:commentId/replies", postController.AddReply)
	authed.PUT("/replies/:replyId", postController.UpdateReply)
	authed.DELETE("/replies/:replyId", postController.DeleteReply)

	// Friends. The /friend-request subtree shares one wildcard name:
	// on send it is the recipient's user ID, on accept/reject the
	// request ID.
	authed.POST("/friend-request/:id", friendController.SendRequest)
	authed.POST("/friend-request/:id/accept", friendController.AcceptRequest)
	authed.POST("/friend-request/:id/reject", friendController.RejectRequest)
	authed.DELETE("/friend/:friendId/remove", friendController.RemoveFriend)
	authed.GET("/friend-requests", friendController.ListRequests)
	authed.GET("/friends", friendController.ListFriends)

	// Feed and search
	authed.GET("/newsfeed", feedController.Newsfeed)
	authed.GET("/search", searchController.Search)

	// Chat
	authed.GET("/chat/:friendId", chatController.History)
	authed.POST("/chat/:friendId", chatController.SendMessage)

	// Realtime chat; authenticates via token inside the handler since
	// websocket clients cannot always set headers.
	router.GET("/ws/chat", chatHandler.HandleConnection)
}
