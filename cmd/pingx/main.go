package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/projectdiscovery/gologger"

	"github.com/projectdiscovery/pingx/internal/runner"
)

func main() {
	options := runner.ParseOptions()
	pingxRunner, err := runner.NewRunner(options)
	if err != nil {
		gologger.Fatal().Msgf("Could not create runner: %s\n", err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup close handler: stop dispatching new probes, let in-flight
	// probes run out their timeouts.
	go func() {
		<-c
		fmt.Println("\r- Ctrl+C pressed in Terminal, Exiting...")
		cancel()
	}()

	if err := pingxRunner.Run(ctx); err != nil {
		gologger.Fatal().Msgf("Could not run ping sweep: %s\n", err)
	}
}
