package service

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyPublished is returned when publishing a published post.
	ErrAlreadyPublished = errors.New("post already published")
	// ErrNoConnection is returned when publishing without page credentials
	// and no page is connected to the business.
	ErrNoConnection = errors.New("page_id and access_token are required")
)

// NotEnoughPostsError is returned when a schedule needs more drafts than exist.
type NotEnoughPostsError struct {
	Need int
	Have int
}

func (e *NotEnoughPostsError) Error() string {
	return fmt.Sprintf("Not enough posts available. Need %d, have %d", e.Need, e.Have)
}

// ErrNotEnoughPosts matches any *NotEnoughPostsError with errors.Is.
var ErrNotEnoughPosts = errors.New("not enough posts")

func (e *NotEnoughPostsError) Is(target error) bool { return target == ErrNotEnoughPosts }
