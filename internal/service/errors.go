package service

import "fmt"

var (
	ErrCannotGetLogs   = fmt.Errorf("cannot get logs")
	ErrCannotCreateLog = fmt.Errorf("cannot create log")
)
