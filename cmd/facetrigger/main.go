package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/ayusman/facetrigger/internal/app"
)

func init() {
	// HighGUI needs the window to live on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	fmt.Println("Face Trigger - mouth open snapshot camera")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.New(app.DefaultConfig())

	if err := a.Run(ctx); err != nil {
		stop()
		log.Fatalf("Face trigger stopped: %v", err)
	}
}
