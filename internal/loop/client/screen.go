package client

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tomz197/fruitcatch/internal/draw"
	"github.com/tomz197/fruitcatch/internal/loop"
	"github.com/tomz197/fruitcatch/internal/loop/config"
	"github.com/tomz197/fruitcatch/internal/loop/server"
	"github.com/tomz197/fruitcatch/internal/object"
)

// lifeBlinkFrequency is how fast the life counter blinks after a penalty, in Hz.
const lifeBlinkFrequency = 8.0

// styles are the lipgloss styles of the menu and game-over panels.
type styles struct {
	title    lipgloss.Style
	subtitle lipgloss.Style
	button   lipgloss.Style
	panel    lipgloss.Style
	heading  lipgloss.Style
	record   lipgloss.Style
	muted    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:    r.NewStyle().Foreground(lipgloss.Color("203")).Bold(true),
		subtitle: r.NewStyle().Foreground(lipgloss.Color("229")),
		button: r.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("86")).
			Padding(0, 2).
			Width(16).
			Align(lipgloss.Center),
		panel: r.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("203")).
			Padding(1, 4).
			Align(lipgloss.Center),
		heading: r.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		record:  r.NewStyle().Foreground(lipgloss.Color("201")).Bold(true),
		muted:   r.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On screen or inactivity transitions, do a full terminal clear
	// so UI elements from the previous screen don't persist.
	screenChanged := c.state.Screen != c.state.prevScreen
	inactiveChanged := c.state.isInactive != c.state.wasInactive
	if c.state.firstFrame || screenChanged || inactiveChanged {
		c.chunkWriter.WriteString(draw.ClearSeq)
		c.canvas.ForceRedraw()
		c.state.prevScreen = c.state.Screen
		c.state.wasInactive = c.state.isInactive
		c.state.firstFrame = false
	}

	c.canvas.Clear()

	ctx := object.DrawContext{
		Canvas:    c.canvas,
		Writer:    c.chunkWriter,
		Projector: c.projector(),
		Spheres:   c.spheres,
	}
	if err := c.drawWorld(ctx); err != nil {
		return err
	}

	// Render canvas to terminal
	c.canvas.Render(c.chunkWriter)

	// Draw border when terminal exceeds max render resolution
	c.canvas.RenderBorder(c.chunkWriter)

	c.drawUI()

	return c.chunkWriter.Flush()
}

// drawUI draws the text overlay for the current screen.
func (c *Client) drawUI() {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.Screen == ScreenShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.Screen {
	case ScreenMenu:
		c.drawMenuScreen(centerX, centerY)
	case ScreenPlaying:
		c.drawPlayingHUD(termWidth, termHeight)
	case ScreenGameOver:
		c.drawGameOverScreen(centerX, centerY)
	}
}

// text writes a HUD text and marks its cells for repaint next frame.
func (c *Client) text(t object.Text) {
	if t.Y < 1 || t.Y > c.canvas.TerminalHeight() {
		return
	}
	t.Draw(c.chunkWriter)
	c.canvas.MarkTextDirty(max(t.X, 1), t.Y, t.Width())
}

// centered writes s centred on column centerX.
func (c *Client) centered(centerX, row int, s string) {
	c.text(object.Text{X: centerX - len([]rune(s))/2, Y: row, Value: s})
}

// block writes a multi-line (possibly styled) block with its top-left
// corner at (col, row) and returns its size in cells.
func (c *Client) block(col, row int, s string) (width, height int) {
	lines := strings.Split(s, "\n")
	col = max(col, 1)
	for i, line := range lines {
		r := row + i
		if r < 1 || r > c.canvas.TerminalHeight() {
			continue
		}
		c.chunkWriter.WriteAt(col, r, line)
		c.canvas.MarkTextDirty(col, r, lipgloss.Width(line))
	}
	return lipgloss.Width(s), len(lines)
}

// blink alternates every 0.6 seconds.
func (c *Client) blink() bool {
	return int(c.state.clock/0.6)%2 == 0
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.centered(centerX, centerY-2, "INACTIVITY WARNING")
	remaining := config.InactivityDisconnectUser - int(c.idleSeconds())
	c.centered(centerX, centerY, fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.", max(remaining, 0)))
	c.centered(centerX, centerY+2, "Press any key to continue")
}

// drawMenuScreen draws the title and one button per difficulty.
func (c *Client) drawMenuScreen(centerX, centerY int) {
	// ASCII art title (figlet "small" font)
	titleArt := []string{
		`  ___ ___ _   _ ___ _____    ___   _ _____ ___ _  _ `,
		` | __| _ \ | | |_ _|_   _|  / __| /_\_   _/ __| || |`,
		` | _||   / |_| || |  | |   | (__ / _ \| || (__| __ |`,
		` |_| |_|_\\___/|___| |_|    \___/_/ \_\_| \___|_||_|`,
	}
	titleWidth := 0
	for _, line := range titleArt {
		titleWidth = max(titleWidth, len(line))
	}
	titleStartY := centerY - 9
	title := c.styles.title.Render(strings.Join(titleArt, "\n"))
	c.block(centerX-titleWidth/2, titleStartY, title)

	subtitle := "~ catch the fruit, dodge the black ones ~"
	c.block(centerX-len(subtitle)/2, titleStartY+len(titleArt)+1, c.styles.subtitle.Render(subtitle))

	// Difficulty buttons, laid out in one row
	presets := c.state.Session.Tuning().Presets
	rendered := make([]string, len(loop.Difficulties))
	total := 0
	const gap = 2
	for i, d := range loop.Difficulties {
		p := d.Preset(presets)
		label := fmt.Sprintf("[%d] %s\n%d lives  x%.1f", i+1, d, p.Life, p.SpeedMultiplier)
		rendered[i] = c.styles.button.Render(label)
		total += lipgloss.Width(rendered[i])
	}
	total += gap * (len(rendered) - 1)

	buttonRow := titleStartY + len(titleArt) + 3
	col := centerX - total/2
	c.state.buttons = c.state.buttons[:0]
	for i, b := range rendered {
		w, h := c.block(col, buttonRow, b)
		c.state.buttons = append(c.state.buttons, button{
			difficulty: loop.Difficulties[i],
			col:        max(col, 1),
			row:        buttonRow,
			width:      w,
			height:     h,
		})
		col += w + gap
	}

	controlsY := buttonRow + lipgloss.Height(rendered[0]) + 1
	controlLines := []string{
		"W A S D  . . . . . Move",
		"Arrows / mouse . . Look",
		"SPACE  . . . . . Sprint",
		"Z  . . . .  End session",
		"Q  . . . . . . . . Quit",
	}
	for i, line := range controlLines {
		c.centered(centerX, controlsY+i, line)
	}

	if c.blink() {
		c.centered(centerX, controlsY+len(controlLines)+1, ">>  Press 1, 2 or 3, or click a difficulty  <<")
	}
}

// drawPlayingHUD draws the in-game HUD.
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawPlayingHUD(termWidth, termHeight int) {
	sess := c.state.Session

	c.text(object.Text{X: 2, Y: 1, Value: fmt.Sprintf("Score: %-6d", sess.Score)})

	timeText := fmt.Sprintf("Time: %3d", int(sess.Remaining()+0.999))
	c.text(object.Text{X: termWidth/2 - len(timeText)/2, Y: 1, Value: timeText})

	// Life blinks red while the penalty flash lasts.
	lifeColor := draw.ColorNone
	if sess.Life <= 3 || !object.ShouldRenderBlink(sess.FlashTime, lifeBlinkFrequency) {
		lifeColor = draw.ColorRed
	}
	lifeText := fmt.Sprintf("Life: %-3d", sess.Life)
	c.text(object.Text{X: termWidth - len(lifeText) - 1, Y: 1, Value: lifeText, Color: lifeColor})

	c.text(object.Text{X: 2, Y: termHeight, Value: fmt.Sprintf("%-6s", sess.Difficulty)})

	players := fmt.Sprintf("Players: %-4d", len(c.server.GetSnapshot().Players))
	c.text(object.Text{X: termWidth - len(players) - 1, Y: termHeight, Value: players})

	// Score popups float up from just below the crosshair.
	centerX, centerY := termWidth/2, termHeight/2
	for _, p := range c.state.popups {
		rise := int((config.ScorePopupSeconds - p.ttl) * 4)
		t := object.Text{Y: centerY + 3 - rise, Value: p.text, Color: p.color}
		t.X = centerX - t.Width()/2
		c.text(t)
	}
}

// drawGameOverScreen draws the final score and the high scores.
func (c *Client) drawGameOverScreen(centerX, centerY int) {
	sess := c.state.Session
	st := c.styles

	var b strings.Builder
	b.WriteString(st.title.Render("GAME OVER"))
	b.WriteString("\n")
	b.WriteString(st.muted.Render(sess.End.String()))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Score: %d   (%s)", sess.Score, sess.Difficulty))
	if c.state.RecordRank > 0 {
		b.WriteString("\n")
		b.WriteString(st.record.Render(fmt.Sprintf("New high score! #%d", c.state.RecordRank)))
	}
	b.WriteString("\n\n")
	b.WriteString(st.heading.Render("HIGH SCORES"))
	b.WriteString("\n")
	b.WriteString(scoreTable(c.server.GetSnapshot()))
	b.WriteString("\n\n")
	prompt := ">>  Press R to play again  <<"
	if !c.blink() {
		prompt = strings.Repeat(" ", len(prompt))
	}
	b.WriteString(prompt)
	b.WriteString("\n")
	b.WriteString(st.muted.Render("Q to quit"))

	panel := st.panel.Render(b.String())
	w, h := lipgloss.Width(panel), lipgloss.Height(panel)
	c.block(centerX-w/2, centerY-h/2, panel)
}

// scoreTable formats the leaderboard as aligned lines.
func scoreTable(snap *server.Snapshot) string {
	if snap == nil || len(snap.TopScores) == 0 {
		return "no scores yet"
	}
	lines := make([]string, 0, len(snap.TopScores))
	for i, e := range snap.TopScores {
		lines = append(lines, fmt.Sprintf("%2d. %-*s %6d  %-6s",
			i+1, config.MaxUsernameLength, e.Username, e.Score, e.Difficulty))
	}
	return strings.Join(lines, "\n")
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	c.centered(centerX, centerY-3, "SERVER SHUTTING DOWN")
	c.centered(centerX, centerY-1, "The server is restarting for maintenance.")
	c.centered(centerX, centerY, "Please reconnect in a moment.")

	remaining := int(c.state.shutdownTime) + 1
	c.centered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining))
	c.centered(centerX, centerY+4, "Press Q to disconnect now")
}
