package models

import "time"

// UserSummary is the author block embedded in posts, comments and profiles.
type UserSummary struct {
	ID       string  `json:"id"`
	Username string  `json:"username"`
	FullName string  `json:"full_name,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
}

// PostView is a post with its images, tag names, counters and the viewer's like state.
type PostView struct {
	ID            string      `json:"id"`
	Caption       string      `json:"caption"`
	Author        UserSummary `json:"author"`
	Images        []string    `json:"images"`
	Tags          []string    `json:"tags"`
	LikesCount    int64       `json:"likes_count"`
	CommentsCount int64       `json:"comments_count"`
	IsLiked       bool        `json:"is_liked"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

type CommentView struct {
	ID         string      `json:"id"`
	PostID     string      `json:"post_id"`
	Author     UserSummary `json:"author"`
	Content    string      `json:"content"`
	Tags       []string    `json:"tags"`
	LikesCount int64       `json:"likes_count"`
	IsLiked    bool        `json:"is_liked"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// FeedResponse represents a page of posts with pagination metadata
type FeedResponse struct {
	Posts      []PostView `json:"posts"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	Total      int64      `json:"total"`
	HasMore    bool       `json:"has_more"`
	TotalPages int        `json:"total_pages"`
}

type ProfileView struct {
	Profile
	Username      string        `json:"username"`
	Subscriptions []UserSummary `json:"subscriptions"`
}

// PublicProfile is what any signed-in user sees on another user's page.
type PublicProfile struct {
	User               UserSummary `json:"user"`
	Bio                string      `json:"bio"`
	HasProfile         bool        `json:"has_profile"`
	PostsCount         int64       `json:"posts_count"`
	SubscribersCount   int64       `json:"subscribers_count"`
	SubscriptionsCount int64       `json:"subscriptions_count"`
	IsSubscribed       bool        `json:"is_subscribed"`
}

type LikeResult struct {
	IsLiked    bool  `json:"is_liked"`
	LikesCount int64 `json:"likes_count"`
}

type SubscriptionResult struct {
	IsSubscribed bool `json:"is_subscribed"`
}
