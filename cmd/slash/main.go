// The slash command replays a script of input actions and world events against
// the persisted character, then saves the resulting state.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/dcrodman/slash/internal"
	"github.com/dcrodman/slash/internal/core"
	"github.com/dcrodman/slash/internal/script"
)

var (
	configFlag = flag.String("config", "./", "Path to the directory containing the config file")
	scriptFlag = flag.String("script", "", "Path to the script to replay")
)

func main() {
	flag.Parse()

	if *scriptFlag == "" {
		flag.Usage()
		os.Exit(1)
	}
	// Resolve before changing directory below.
	scriptPath, err := filepath.Abs(*scriptFlag)
	if err != nil {
		fmt.Println("error resolving script path:", err)
		os.Exit(1)
	}
	s, err := script.Load(scriptPath)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	config, err := core.LoadConfig(*configFlag)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	fmt.Println("using configuration directory:", *configFlag)

	// Change to the config directory so that any relative paths in the config
	// file will resolve.
	if err := os.Chdir(*configFlag); err != nil {
		fmt.Println("error changing to config directory:", err)
		os.Exit(1)
	}

	// Bind the Controller to one top-level context so that we can shut down cleanly.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Register a SIGTERM handler so that Ctrl-C stops the replay and saves state.
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go exitHandler(cancel, c)

	controller := &internal.Controller{
		Config: config,
	}
	if err := controller.Start(ctx, s); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Println(err)
			os.Exit(1)
		}
	}
	fmt.Println("shut down")
}

// exitHandler cancels the replay on the first signal and hard exits on the second.
func exitHandler(cancelFn func(), c chan os.Signal) {
	<-c
	fmt.Println("waiting to shut down gracefully...")
	cancelFn()

	<-c
	fmt.Println("hard exiting (killed)")
	os.Exit(1)
}
