package player

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/pixil98/go-cavia/internal/commands"
	"github.com/pixil98/go-cavia/internal/messaging"
)

// Player is one connected client driving a game session.
type Player struct {
	conn       io.ReadWriter
	state      *commands.PlayerState
	cmdHandler *commands.Handler

	msgs chan []byte
}

// Id returns the player's unique identifier (lowercase name)
func (p *Player) Id() string {
	return p.state.ID
}

// deliver queues a published event for the connection loop. It never
// blocks the broker; events beyond the buffer are dropped.
func (p *Player) deliver(data []byte) {
	select {
	case p.msgs <- data:
	default:
		slog.Warn("dropping ui event, player not reading", "player", p.state.ID)
	}
}

func (p *Player) Play(ctx context.Context) error {
	// Start goroutine to read input lines into a channel
	inputChan := make(chan string)
	inputErrChan := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(p.conn)
		for scanner.Scan() {
			select {
			case inputChan <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		inputErrChan <- scanner.Err()
		close(inputChan)
	}()

	// Show the player where they are on login
	if err := p.exec(ctx, "look"); err != nil {
		return fmt.Errorf("initial look failed: %w", err)
	}
	if err := p.prompt(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case msg := <-p.msgs:
			if err := p.render(msg); err != nil {
				return err
			}

		case line, ok := <-inputChan:
			if !ok {
				// Input channel closed (connection lost).
				select {
				case err := <-inputErrChan:
					return err
				default:
					return nil
				}
			}

			line = strings.TrimSpace(line)
			if line != "" {
				parts := strings.Fields(line)
				if err := p.exec(ctx, parts[0], parts[1:]...); err != nil {
					return fmt.Errorf("command execution failed: %w", err)
				}
			}

			if p.state.Quit {
				p.drain()
				return p.writeLine("Tot ziens!")
			}

			if err := p.prompt(); err != nil {
				return err
			}
		}
	}
}

// exec runs one command. User errors are shown to the player; anything
// else is returned.
func (p *Player) exec(ctx context.Context, cmd string, args ...string) error {
	err := p.cmdHandler.Exec(ctx, p.state, cmd, args...)
	var userErr *commands.UserError
	if errors.As(err, &userErr) {
		return p.writeLine(userErr.Message)
	}
	return err
}

// drain writes whatever events are already queued.
func (p *Player) drain() {
	for {
		select {
		case msg := <-p.msgs:
			if err := p.render(msg); err != nil {
				slog.Debug("writing queued event", "player", p.state.ID, "error", err)
				return
			}
		default:
			return
		}
	}
}

func (p *Player) render(msg []byte) error {
	ev, err := messaging.DecodeEvent(msg)
	if err != nil {
		slog.Warn("skipping ui event", "player", p.state.ID, "error", err)
		return nil
	}
	text, err := messaging.Render(ev)
	if err != nil {
		slog.Warn("rendering ui event", "player", p.state.ID, "type", ev.Type, "error", err)
		return nil
	}
	if text == "" {
		return nil
	}
	return p.writeLine("\n" + text)
}

func (p *Player) prompt() error {
	prompt := "> "
	if st, err := p.state.Session.Status(); err == nil {
		prompt = fmt.Sprintf("[%s | %d wortels] > ", st.WorldName, st.Carrots)
	}
	_, err := io.WriteString(p.conn, prompt)
	return err
}

func (p *Player) writeLine(msg string) error {
	_, err := io.WriteString(p.conn, msg+"\n")
	return err
}
