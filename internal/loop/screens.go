package loop

import "github.com/tomz197/fruitcatch/internal/input"

// updateMenu waits for a difficulty on keys 1-3.
func (s *Session) updateMenu(in input.Input) {
	if in.Number >= 1 && in.Number <= len(Difficulties) {
		s.SelectDifficulty(Difficulties[in.Number-1])
	}
}

// updateGameOver waits for restart.
func (s *Session) updateGameOver(in input.Input) {
	if in.Restart || in.Enter {
		s.Restart()
	}
}

// SelectDifficulty starts a round from the menu. It reports false when
// the session is not in MENU or d is unknown.
func (s *Session) SelectDifficulty(d Difficulty) bool {
	if s.Phase != PhaseMenu || !d.Valid() {
		return false
	}
	s.start(d)
	return true
}

// Restart leaves GAMEOVER: back to the menu, or straight into a new round
// at the same difficulty when the menu is skipped.
func (s *Session) Restart() {
	if s.Phase != PhaseGameOver {
		return
	}
	if s.skipMenu {
		s.start(s.Difficulty)
		return
	}
	s.Phase = PhaseMenu
}

// EndSession finishes a PLAYING round at the player's request.
func (s *Session) EndSession() {
	if s.Phase == PhasePlaying {
		s.finish(EndRequested)
	}
}
