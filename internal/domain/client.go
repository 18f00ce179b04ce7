package domain

import (
	"github.com/pkg/errors"
)

var ErrConnectionClosed = errors.New("connection closed")

const (
	ClientUuidHeader = "X-Client-Key"
)

type messageType byte

const (
	StartGame = messageType(iota)
	RequestMove
	PlayerMove
	RequestDifficulty
	SelectDifficulty
	ResetGame
	BackToStart
)

type Message struct {
	Type    messageType
	Payload any
}

type StartGamePayload struct {
	CellType     Cell
	Board        Board
	Difficulty   Difficulty
	OpponentName string
}

type SelectDifficultyPayload struct {
	Difficulty Difficulty
}

type PlayerMovePayload struct {
	CellType        Cell
	Position        byte
	IsMoveRequested bool
	GameResult      *string
	WinningLine     *Line
	// AutoReset tells the client that a finished game restarts by itself.
	AutoReset bool
}

type PlayerMovePayloadOption func(p *PlayerMovePayload)

func RequestMoveBack() PlayerMovePayloadOption {
	return func(p *PlayerMovePayload) {
		p.IsMoveRequested = true
	}
}

func WithGameResult(gameResultMsg string) PlayerMovePayloadOption {
	return func(p *PlayerMovePayload) {
		p.GameResult = &gameResultMsg
	}
}

func WithAutoReset() PlayerMovePayloadOption {
	return func(p *PlayerMovePayload) {
		p.AutoReset = true
	}
}

func WithWinningLine(line Line) PlayerMovePayloadOption {
	return func(p *PlayerMovePayload) {
		p.WinningLine = &line
	}
}

type Client interface {
	WriteMessage(msg Message) error
	ReadMessage() (Message, error)
	Uuid() string
}
