package game

import (
	"github.com/pkg/errors"
)

var (
	errUnexpectedOutcome     = errors.New("unexpected game outcome")
	errUnexpectedMessageType = errors.New("unexpected message type")
)
