package bot

import (
	"github.com/pkg/errors"
)

var ErrNoEmptyCells = errors.New("there are no empty cells on the board")
