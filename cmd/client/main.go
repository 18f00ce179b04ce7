package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/kiryu-dev/tic-tac-toe-bot/internal/domain"
	"github.com/kiryu-dev/tic-tac-toe-bot/pkg/utils"
	"github.com/pkg/errors"
)

var errQuit = errors.New("quit")

func main() {
	host := flag.String("host", "localhost:8080", "game server address")
	flag.Parse()
	u := url.URL{Scheme: "ws", Host: *host, Path: "/game"}
	header := http.Header{}
	header.Set(domain.ClientUuidHeader, uuid.NewString())
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), header)
	if err != nil {
		log.Fatal("dial: " + err.Error())
	}
	defer func() {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		_ = conn.Close()
	}()
	client := newClient(conn)
	if err := client.handleActions(); err != nil && !errors.Is(err, errQuit) {
		log.Fatal(err)
	}
}

type client struct {
	conn         *websocket.Conn
	scanner      *bufio.Scanner
	board        domain.Board
	cellType     domain.Cell
	opponentName string
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn:    conn,
		scanner: bufio.NewScanner(os.Stdin),
	}
}

func (c *client) handleActions() error {
	for {
		msg := new(domain.Message)
		if err := c.conn.ReadJSON(msg); err != nil {
			return errors.WithMessage(err, "read json msg")
		}
		var err error
		switch msg.Type {
		case domain.RequestDifficulty:
			err = c.handleRequestDifficultyAction()
		case domain.StartGame:
			err = c.handleStartGameAction(msg)
		case domain.RequestMove:
			err = c.handleRequestMoveAction()
		case domain.PlayerMove:
			err = c.handlePlayerMoveAction(msg)
		}
		if err != nil {
			return err
		}
	}
}

func (c *client) handleRequestDifficultyAction() error {
	fmt.Printf("\033[H\033[J")
	fmt.Println("Choose your opponent: 1) BUN (easy)  2) SHADOW (medium)  3) FLAP (hard)")
	difficulties := []domain.Difficulty{domain.Easy, domain.Medium, domain.Hard}
	for {
		line, err := c.readLine()
		if err != nil {
			return err
		}
		idx, err := strconv.Atoi(line)
		if err != nil || idx < 1 || idx > len(difficulties) {
			fmt.Print("\033[F\033[K")
			continue
		}
		return c.write(domain.Message{
			Type:    domain.SelectDifficulty,
			Payload: domain.SelectDifficultyPayload{Difficulty: difficulties[idx-1]},
		})
	}
}

func (c *client) handleStartGameAction(msg *domain.Message) error {
	v, err := utils.UnmarshalJson[domain.StartGamePayload](msg.Payload)
	if err != nil {
		return errors.WithMessage(err, "unmarshal json to 'StartGamePayload' type")
	}
	c.cellType = v.CellType
	c.board = v.Board
	c.opponentName = v.OpponentName
	c.printBoard()
	return nil
}

func (c *client) handleRequestMoveAction() error {
	for {
		fmt.Printf("Your move (1-9, r - reset, b - back): ")
		line, err := c.readLine()
		if err != nil {
			return err
		}
		switch line {
		case "r":
			return c.write(domain.Message{Type: domain.ResetGame})
		case "b":
			return c.write(domain.Message{Type: domain.BackToStart})
		}
		pos, err := strconv.ParseUint(line, 10, 8)
		if err != nil || pos < 1 || pos > domain.BoardSize {
			fmt.Print("\033[F\033[K")
			continue
		}
		return c.write(domain.Message{
			Type: domain.PlayerMove,
			Payload: domain.PlayerMovePayload{
				CellType: c.cellType,
				Position: byte(pos - 1),
			},
		})
	}
}

func (c *client) handlePlayerMoveAction(msg *domain.Message) error {
	v, err := utils.UnmarshalJson[domain.PlayerMovePayload](msg.Payload)
	if err != nil {
		return errors.WithMessage(err, "unmarshal json to 'PlayerMovePayload' type")
	}
	c.board[v.Position] = v.CellType
	c.printBoard()
	if v.CellType != c.cellType && v.GameResult == nil {
		fmt.Printf("%s played %d\n", c.opponentName, v.Position+1)
	}
	if v.GameResult != nil {
		fmt.Println(*v.GameResult)
		if v.WinningLine != nil {
			fmt.Printf("winning line: %d %d %d\n", v.WinningLine[0]+1, v.WinningLine[1]+1, v.WinningLine[2]+1)
		}
		return c.handleGameOver(v.AutoReset)
	}
	if v.IsMoveRequested {
		return c.handleRequestMoveAction()
	}
	return nil
}

// handleGameOver waits when the server restarts the game by itself,
// otherwise the user decides what to do.
func (c *client) handleGameOver(autoReset bool) error {
	if autoReset {
		fmt.Println("a new game starts in a moment...")
		return nil
	}
	fmt.Print("r - play again, b - back to start, q - quit: ")
	for {
		line, err := c.readLine()
		if err != nil {
			return err
		}
		switch line {
		case "r":
			return c.write(domain.Message{Type: domain.ResetGame})
		case "b":
			return c.write(domain.Message{Type: domain.BackToStart})
		case "q":
			return errQuit
		}
	}
}

func (c *client) write(msg domain.Message) error {
	if err := c.conn.WriteJSON(msg); err != nil {
		return errors.WithMessage(err, "write json msg")
	}
	return nil
}

func (c *client) readLine() (string, error) {
	if ok := c.scanner.Scan(); !ok {
		if err := c.scanner.Err(); err != nil {
			return "", err
		}
		return "", errQuit
	}
	return strings.TrimSpace(c.scanner.Text()), nil
}

func (c *client) printBoard() {
	fmt.Printf("\033[H\033[J")
	fmt.Printf("you (%c) vs %s\n\n", c.cellType, c.opponentName)
	for i, cell := range c.board {
		if (i+1)%3 == 0 {
			fmt.Printf("%c ", cell)
			if i < 6 {
				fmt.Printf("\n——|———|——\n")
			}
		} else {
			fmt.Printf("%c | ", cell)
		}
	}
	fmt.Println()
}
