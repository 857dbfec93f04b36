package board_services

import "errors"

var (
	ErrTitleRequired    = errors.New("title is required")
	ErrBoardIDRequired  = errors.New("board id is required")
	ErrColumnIDRequired = errors.New("column id is required")
	ErrContentRequired  = errors.New("content is required")
	ErrInvalidPriority  = errors.New("invalid priority")
	ErrAlreadyMember    = errors.New("user already a member")
	ErrNotCommentAuthor = errors.New("not the comment author")
)
