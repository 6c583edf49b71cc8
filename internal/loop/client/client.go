// Package client runs one player's game on a terminal: it reads input,
// ticks the player's session, renders the scene and reports to the shared
// scoreboard server.
package client

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/tomz197/fruitcatch/internal/audio"
	"github.com/tomz197/fruitcatch/internal/draw"
	"github.com/tomz197/fruitcatch/internal/input"
	"github.com/tomz197/fruitcatch/internal/loop"
	"github.com/tomz197/fruitcatch/internal/loop/config"
	"github.com/tomz197/fruitcatch/internal/loop/server"
	"github.com/tomz197/fruitcatch/internal/object"
	"github.com/tomz197/fruitcatch/internal/texture"
)

// rareCatchPoints is the value from which a catch gets the rare sound.
const rareCatchPoints = 5

// Sounder plays sound effects. *player.Player implements it; SSH sessions
// run without one.
type Sounder interface {
	Play(s audio.Sound)
}

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter // Accumulates UI text for chunked output
	spheres      *draw.SphereCache // Fruit footprints for this renderer
	ground       *texture.Texture  // Nil draws a checkerboard
	styles       styles
	reader       *bufio.Reader
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	lastStatus   server.Status
	username     string
	termSizeFunc draw.TermSizeFunc
	logger       *log.Logger
	sounder      Sounder
	drawOrder    []*object.Fruit
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Logger       *log.Logger
	Session      loop.Options     // Tuning, catch policy, population, menu mode
	Sounder      Sounder          // Optional
	Ground       *texture.Texture // Optional ground texture
}

// NewClient creates a new client connected to the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	username := opts.Username
	if username == "" {
		username = "player"
	}
	if len(username) > config.MaxUsernameLength {
		username = username[:config.MaxUsernameLength]
	}

	handle := gs.RegisterClient(username)
	state := NewClientState(loop.NewSession(opts.Session))
	state.termSizeFunc = termSizeFunc

	// Create canvas with clamped dimensions for max render resolution
	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.ViewWidth, config.ViewHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)

	// The renderer writes to the session, not to our own stdout, so the
	// colour profile is fixed rather than detected.
	renderer := lipgloss.NewRenderer(w)
	renderer.SetColorProfile(termenv.ANSI256)
	renderer.SetHasDarkBackground(true)

	return &Client{
		server:       gs,
		handle:       handle,
		state:        state,
		canvas:       canvas,
		chunkWriter:  chunkWriter,
		spheres:      draw.NewSphereCache(),
		ground:       opts.Ground,
		styles:       newStyles(renderer),
		reader:       r,
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		username:     username,
		termSizeFunc: termSizeFunc,
		logger:       logger,
		sounder:      opts.Sounder,
	}
}

// Run starts the client loop. Blocks until the client quits, is
// disconnected for inactivity or the server stops.
func (c *Client) Run() error {
	release := draw.AcquireTerminal(c.writer)
	defer c.server.UnregisterClient(c.handle.ID)

	err := c.loop()
	release()
	if err == nil && c.state.PrintScore {
		fmt.Fprintf(c.writer, "Final score: %d\r\n", c.state.FinalScore)
	}
	return err
}

func (c *Client) loop() error {
	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.processInput()
		c.processServerEvents()
		c.updateScreen()
		c.update()
		if !c.state.Running {
			break
		}

		if err := c.drawFrame(); err != nil {
			return err
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}
	return nil
}

// processInput reads this frame's input and tracks inactivity.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if len(c.state.Input.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if c.idleSeconds() > config.InactivityDisconnectUser {
		c.logger.Info("disconnecting inactive player", "user", c.username)
		c.state.Running = false
	} else if c.idleSeconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Quit {
		c.state.Running = false
	}
}

// idleSeconds is the time since the last input.
func (c *Client) idleSeconds() float64 {
	return time.Since(c.lastInput).Seconds()
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventNewRecord:
				c.state.RecordRank = event.Rank
			case server.EventServerShutdown:
				c.beginShutdown()
			}
		default:
			return
		}
	}
}

// beginShutdown ends a running round so its score is still submitted,
// then shows the shutdown screen.
func (c *Client) beginShutdown() {
	c.state.Screen = ScreenShutdown
	c.state.shutdownTime = config.ShutdownDisplaySeconds
	c.state.Session.EndSession()
	c.processSessionEvents()
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area (e.g. old borders or offset content).
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// update advances the session and everything the client derives from it.
func (c *Client) update() {
	dt := c.state.delta.Seconds()
	c.state.clock += dt

	if c.state.Screen == ScreenShutdown {
		c.updateShutdownState(dt)
		return
	}

	sess := c.state.Session
	in := c.state.Input
	if sess.Phase == loop.PhaseMenu && in.Click {
		col := in.ClickCol - c.canvas.OffsetCol()
		row := in.ClickRow - c.canvas.OffsetRow()
		if d, ok := c.state.buttonAt(col, row); ok {
			sess.SelectDifficulty(d)
		}
	}

	sess.Tick(in, dt)
	c.processSessionEvents()
	c.state.agePopups(dt)

	if c.state.Screen == ScreenShutdown || !c.state.Running {
		return
	}
	screen := screenFor(sess.Phase)
	if screen != c.state.Screen {
		// Keys that caused the change must not act on the next screen.
		input.ResetKeyInput(c.inputStream)
		c.state.Screen = screen
	}
	c.reportStatus()
}

// processSessionEvents turns session events into sounds, popups and
// scoreboard submissions.
func (c *Client) processSessionEvents() {
	sess := c.state.Session
	for _, ev := range sess.DrainEvents() {
		switch ev.Kind {
		case loop.EventDifficultySelected:
			c.state.RecordRank = 0
			c.state.popups = c.state.popups[:0]
			c.play(audio.SoundSelect)
			c.logger.Debug("round started", "user", c.username, "difficulty", sess.Difficulty)
		case loop.EventCatch:
			switch {
			case ev.Points < 0:
				c.play(audio.SoundPenalty)
				c.state.addPopup(fmt.Sprintf("%d", ev.Points), draw.ColorRed, config.ScorePopupSeconds)
			case ev.Points >= rareCatchPoints:
				c.play(audio.SoundRareCatch)
				c.state.addPopup(fmt.Sprintf("+%d", ev.Points), draw.ColorMagenta, config.ScorePopupSeconds)
			default:
				c.play(audio.SoundCatch)
				c.state.addPopup(fmt.Sprintf("+%d", ev.Points), draw.ColorYellow, config.ScorePopupSeconds)
			}
		case loop.EventGameOver:
			c.play(audio.SoundGameOver)
			c.server.SubmitScore(c.handle.ID, ev.Score, sess.Difficulty.String())
			c.logger.Info("round over", "user", c.username, "score", ev.Score,
				"difficulty", sess.Difficulty, "reason", ev.Reason)
			if ev.Reason == loop.EndRequested && c.state.Screen != ScreenShutdown {
				c.state.FinalScore = ev.Score
				c.state.PrintScore = true
				c.state.Running = false
			}
		}
	}
}

// reportStatus tells the server about the session when it changed.
func (c *Client) reportStatus() {
	sess := c.state.Session
	status := server.Status{Phase: sess.Phase.String(), Score: sess.Score}
	if sess.Phase != loop.PhaseMenu {
		status.Difficulty = sess.Difficulty.String()
	}
	if status == c.lastStatus {
		return
	}
	c.lastStatus = status
	c.server.SendStatus(c.handle.ID, status)
}

func (c *Client) play(s audio.Sound) {
	if c.sounder != nil {
		c.sounder.Play(s)
	}
}

// updateShutdownState handles the shutdown screen countdown.
func (c *Client) updateShutdownState(dt float64) {
	c.state.shutdownTime -= dt
	if c.state.shutdownTime <= 0 {
		c.state.Running = false
	}
}

// projector builds this frame's view from the player's camera.
func (c *Client) projector() draw.Projector {
	cam := c.state.Session.Camera
	return draw.NewProjector(cam.Position, cam.Forward(), cam.Up, config.FieldOfView,
		c.canvas.LogicalWidth(), c.canvas.LogicalHeight(), config.NearPlane, config.FarPlane)
}

// LoadGround loads the optional ground texture. An empty path or a file
// that cannot be decoded leaves the ground a checkerboard.
func LoadGround(path string, logger *log.Logger) *texture.Texture {
	if path == "" {
		return nil
	}
	tex, err := texture.Load(path)
	if err != nil {
		logger.Warn("ground texture unavailable", "path", path, "err", err)
		return nil
	}
	return tex
}
