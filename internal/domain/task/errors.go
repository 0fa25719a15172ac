package task

import "errors"

var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrAssigneeNotFound = errors.New("assigned user not found or inactive")
	ErrNotTaskAssignee  = errors.New("not allowed to modify tasks assigned to someone else")
)
