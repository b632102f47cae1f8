// Package protocol implements the stdio line protocol: one command per
// line, each starting with a numeric request id and a keyword, replying
// with a line starting "=" (success) or "?" (failure) echoing the same id
// and keyword.
package protocol

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/herohde/points/pkg/board"
	"github.com/herohde/points/pkg/engine"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

// commands lists every keyword list_commands reports, in the reference
// engine's exact alphabetical order.
var commands = []string{
	"gen_move", "gen_move_with_complexity", "gen_move_with_time",
	"init", "list_commands", "name", "play", "quit", "undo", "version",
}

var version = "0.1.0"

// Driver reads commands from in and writes replies to out until a "quit"
// command is seen or the input stream closes. It owns no engine until
// "init" is received -- before that, every command other than
// list_commands, name, version and quit fails with a "?" reply, mirroring
// the reference engine's NULL-bot guard.
type Driver struct {
	iox.AsyncCloser

	e   *engine.Engine
	out chan<- string
	newEngine func(ctx context.Context, width, height int, seed int64) *engine.Engine
}

// NewDriver starts the driver against in, using newEngine to construct the
// engine on "init" (injected so callers can tune engine.Options without
// this package needing to know about them).
func NewDriver(ctx context.Context, in <-chan string, newEngine func(ctx context.Context, width, height int, seed int64) *engine.Engine) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		AsyncCloser: iox.NewAsyncCloser(),
		out:         out,
		newEngine:   newEngine,
	}
	go d.process(ctx, in)
	return d, out
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "Protocol driver initialized")

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "Input stream broken. Exiting")
				return
			}
			if quit := d.dispatch(ctx, line); quit {
				return
			}

		case <-d.Closed():
			logw.Infof(ctx, "Driver closed")
			return
		}
	}
}

// dispatch parses and executes one command line, returning true if the
// driver should stop after it (the "quit" command).
func (d *Driver) dispatch(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return false
	}

	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return false
	}
	keyword := fields[1]
	args := fields[2:]

	switch keyword {
	case "init":
		d.handleInit(ctx, id, args)
	case "play":
		d.handlePlay(ctx, id, args)
	case "gen_move":
		d.handleGenMove(ctx, id, args)
	case "gen_move_with_complexity":
		d.handleGenMoveWithComplexity(ctx, id, args)
	case "gen_move_with_time":
		d.handleGenMoveWithTime(ctx, id, args)
	case "undo":
		d.handleUndo(id)
	case "list_commands":
		d.reply(id, keyword, strings.Join(commands, " "))
	case "name":
		d.reply(id, keyword, engine.Name())
	case "version":
		d.reply(id, keyword, version)
	case "quit":
		d.reply(id, keyword, "")
		return true
	default:
		d.fail(id, keyword)
	}
	return false
}

func (d *Driver) handleInit(ctx context.Context, id int, args []string) {
	w, err1 := strconv.Atoi(arg(args, 0))
	h, err2 := strconv.Atoi(arg(args, 1))
	seed, err3 := strconv.ParseInt(arg(args, 2), 10, 64)
	if err1 != nil || err2 != nil || err3 != nil {
		d.fail(id, "init")
		return
	}

	d.e = d.newEngine(ctx, w, h, seed)
	d.reply(id, "init", "")
}

func (d *Driver) handlePlay(ctx context.Context, id int, args []string) {
	x, err1 := strconv.Atoi(arg(args, 0))
	y, err2 := strconv.Atoi(arg(args, 1))
	player, err3 := parsePlayer(arg(args, 2))
	if d.e == nil || err1 != nil || err2 != nil || err3 != nil || !d.e.DoStep(x, y, player) {
		d.fail(id, "play")
		return
	}
	d.reply(id, "play", fmt.Sprintf("%v %v %v", x, y, int(player)))
}

func (d *Driver) handleUndo(id int) {
	if d.e == nil || !d.e.UndoStep() {
		d.fail(id, "undo")
		return
	}
	d.reply(id, "undo", "")
}

func (d *Driver) handleGenMove(ctx context.Context, id int, args []string) {
	player, err := parsePlayer(arg(args, 0))
	if d.e == nil || err != nil {
		d.fail(id, "gen_move")
		return
	}
	d.e.SetPlayer(player)
	x, y := d.e.Get(ctx)
	d.replyMove(id, "gen_move", x, y, player)
}

func (d *Driver) handleGenMoveWithComplexity(ctx context.Context, id int, args []string) {
	player, err1 := parsePlayer(arg(args, 0))
	complexity, err2 := strconv.Atoi(arg(args, 1))
	if d.e == nil || err1 != nil || err2 != nil {
		d.fail(id, "gen_move_with_complexity")
		return
	}
	d.e.SetPlayer(player)
	x, y := d.e.GetWithComplexity(ctx, complexity)
	d.replyMove(id, "gen_move_with_complexity", x, y, player)
}

func (d *Driver) handleGenMoveWithTime(ctx context.Context, id int, args []string) {
	player, err1 := parsePlayer(arg(args, 0))
	ms, err2 := strconv.Atoi(arg(args, 1))
	if d.e == nil || err1 != nil || err2 != nil {
		d.fail(id, "gen_move_with_time")
		return
	}
	d.e.SetPlayer(player)
	x, y := d.e.GetWithTime(ctx, time.Duration(ms)*time.Millisecond)
	d.replyMove(id, "gen_move_with_time", x, y, player)
}

func (d *Driver) replyMove(id int, keyword string, x, y int, player board.Player) {
	if x < 0 || y < 0 {
		d.fail(id, keyword)
		return
	}
	d.reply(id, keyword, fmt.Sprintf("%v %v %v", x, y, int(player)))
}

func (d *Driver) reply(id int, keyword, rest string) {
	if rest == "" {
		d.out <- fmt.Sprintf("= %v %v", id, keyword)
		return
	}
	d.out <- fmt.Sprintf("= %v %v %v", id, keyword, rest)
}

func (d *Driver) fail(id int, keyword string) {
	d.out <- fmt.Sprintf("? %v %v", id, keyword)
}

func arg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

func parsePlayer(s string) (board.Player, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if v != int(board.Red) && v != int(board.Black) {
		return 0, fmt.Errorf("invalid player: %v", s)
	}
	return board.Player(v), nil
}
