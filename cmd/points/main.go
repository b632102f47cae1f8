package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/herohde/points/pkg/board"
	"github.com/herohde/points/pkg/engine"
	"github.com/herohde/points/pkg/protocol"
	"github.com/seekerror/logw"
)

var (
	hash    = flag.Uint64("hash", 0, "alpha-beta transposition table size in bytes (0 disables it)")
	workers = flag.Int("workers", 0, "worker goroutines for search (0 uses GOMAXPROCS)")
)

func main() {
	flag.Parse()
	ctx := context.Background()

	in := readStdinLines(ctx)

	newEngine := func(ctx context.Context, width, height int, seed int64) *engine.Engine {
		return engine.New(ctx, width, height, board.BeginClean, seed, engine.Options{Hash: *hash, Workers: *workers})
	}

	driver, out := protocol.NewDriver(ctx, in, newEngine)
	go writeStdoutLines(ctx, out)

	<-driver.Closed()

	logw.Exitf(ctx, "Points engine exited")
}

func readStdinLines(ctx context.Context) <-chan string {
	ret := make(chan string, 1)
	go func() {
		defer close(ret)

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			logw.Debugf(ctx, "<< %v", scanner.Text())
			ret <- scanner.Text()
		}
	}()
	return ret
}

func writeStdoutLines(ctx context.Context, out <-chan string) {
	for line := range out {
		logw.Debugf(ctx, ">> %v", line)
		_, _ = fmt.Fprintln(os.Stdout, line)
	}
}
