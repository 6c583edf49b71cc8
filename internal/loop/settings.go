package loop

import (
	"fmt"

	envconfig "github.com/tomz197/fruitcatch/internal/config"
	"github.com/tomz197/fruitcatch/internal/loop/config"
)

// Settings are the process-wide game settings read at startup. Catch
// policies keep per-session state, so every session builds its own from
// the names here.
type Settings struct {
	Tuning     config.Tuning
	Catch      string
	Population string
	SkipMenu   bool
	Difficulty Difficulty
}

// LoadSettings reads the settings from the environment:
//
//	FRUIT_TUNING      YAML tuning file (defaults when unset)
//	FRUIT_CATCH       radius, basket, body or ring
//	FRUIT_POPULATION  single or dual
//	FRUIT_SKIP_MENU   start straight into a round
//	FRUIT_DIFFICULTY  difficulty used with FRUIT_SKIP_MENU
func LoadSettings() (Settings, error) {
	s := Settings{
		Tuning:     config.Default(),
		Catch:      envconfig.GetEnv("FRUIT_CATCH", CatchRadius),
		Population: envconfig.GetEnv("FRUIT_POPULATION", PopulationDual),
		SkipMenu:   envconfig.GetEnvBool("FRUIT_SKIP_MENU", false),
		Difficulty: DifficultyNormal,
	}

	if path := envconfig.GetEnv("FRUIT_TUNING", ""); path != "" {
		t, err := config.Load(path)
		if err != nil {
			return s, err
		}
		s.Tuning = t
	}

	if name := envconfig.GetEnv("FRUIT_DIFFICULTY", ""); name != "" {
		d, err := ParseDifficulty(name)
		if err != nil {
			return s, err
		}
		s.Difficulty = d
	}

	if _, err := s.SessionOptions(); err != nil {
		return s, err
	}
	return s, nil
}

// SessionOptions builds the options for one new session.
func (s Settings) SessionOptions() (Options, error) {
	catch, err := NewCatchPolicy(s.Catch, s.Tuning)
	if err != nil {
		return Options{}, err
	}
	pop, err := NewPopulation(s.Population)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Tuning:     s.Tuning,
		Catch:      catch,
		Population: pop,
		SkipMenu:   s.SkipMenu,
		Difficulty: s.Difficulty,
	}, nil
}

func (s Settings) String() string {
	return fmt.Sprintf("catch=%s population=%s skipMenu=%v difficulty=%s",
		s.Catch, s.Population, s.SkipMenu, s.Difficulty)
}
