package protocol_test

import (
	"context"
	"testing"
	"time"

	"github.com/herohde/points/pkg/board"
	"github.com/herohde/points/pkg/engine"
	"github.com/herohde/points/pkg/protocol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDriver(t *testing.T) (chan string, <-chan string) {
	t.Helper()
	in := make(chan string, 10)
	factory := func(ctx context.Context, width, height int, seed int64) *engine.Engine {
		return engine.New(ctx, width, height, board.BeginClean, seed, engine.Options{})
	}
	_, out := protocol.NewDriver(context.Background(), in, factory)
	return in, out
}

func recv(t *testing.T, out <-chan string) string {
	t.Helper()
	select {
	case line := <-out:
		return line
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for reply")
		return ""
	}
}

func TestInitThenPlayThenUndo(t *testing.T) {
	in, out := newDriver(t)

	in <- "1 init 9 9 42"
	assert.Equal(t, "= 1 init", recv(t, out))

	in <- "2 play 4 4 0"
	assert.Equal(t, "= 2 play 4 4 0", recv(t, out))

	in <- "3 undo"
	assert.Equal(t, "= 3 undo", recv(t, out))

	in <- "4 undo"
	assert.Equal(t, "? 4 undo", recv(t, out))
}

func TestCommandsFailBeforeInit(t *testing.T) {
	in, out := newDriver(t)

	in <- "1 play 0 0 0"
	assert.Equal(t, "? 1 play", recv(t, out))
}

func TestGenMoveOnEmptyBoardReturnsCenter(t *testing.T) {
	in, out := newDriver(t)

	in <- "1 init 9 9 1"
	require.Equal(t, "= 1 init", recv(t, out))

	in <- "2 gen_move 0"
	assert.Equal(t, "= 2 gen_move 4 4 0", recv(t, out))
}

func TestListCommandsAndName(t *testing.T) {
	in, out := newDriver(t)

	in <- "1 list_commands"
	line := recv(t, out)
	assert.Contains(t, line, "gen_move")
	assert.Contains(t, line, "quit")

	in <- "2 name"
	assert.Contains(t, recv(t, out), "Open Points")
}

func TestQuitClosesOutputChannel(t *testing.T) {
	in, out := newDriver(t)

	in <- "1 quit"
	assert.Equal(t, "= 1 quit", recv(t, out))

	_, ok := <-out
	assert.False(t, ok)
}
