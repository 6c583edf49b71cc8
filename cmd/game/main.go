package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/fruitcatch/internal/audio/player"
	"github.com/tomz197/fruitcatch/internal/config"
	"github.com/tomz197/fruitcatch/internal/loop"
	"github.com/tomz197/fruitcatch/internal/loop/client"
	"github.com/tomz197/fruitcatch/internal/loop/server"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	// The terminal belongs to the game, so logs only go to a file.
	logOut := io.Discard
	if path := config.GetEnv("FRUIT_LOG", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	logger := log.NewWithOptions(logOut, log.Options{ReportTimestamp: true, Prefix: "fruitcatch"})
	if config.GetEnvBool("FRUIT_DEBUG", false) {
		logger.SetLevel(log.DebugLevel)
	}

	settings, err := loop.LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "settings: %v\n", err)
		os.Exit(1)
	}
	sessionOpts, err := settings.SessionOptions()
	if err != nil {
		fmt.Fprintf(os.Stderr, "settings: %v\n", err)
		os.Exit(1)
	}
	logger.Info("starting", "settings", settings)

	clientOpts := client.ClientOptions{
		Username: config.GetEnv("USER", "player"),
		Logger:   logger,
		Session:  sessionOpts,
		Ground:   client.LoadGround(config.GetEnv("FRUIT_GROUND_TEXTURE", ""), logger),
	}
	if config.GetEnvBool("FRUIT_SOUND", true) {
		sounds, err := player.New(config.GetEnvFloat("FRUIT_VOLUME", 0.5))
		if err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			clientOpts.Sounder = sounds
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	// A local scoreboard for this one player.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	gameServer := server.NewServer(server.WithLogger(logger))
	go gameServer.Run(ctx)

	c := client.NewClient(gameServer, bufio.NewReader(os.Stdin), os.Stdout, clientOpts)
	if err := c.Run(); err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
