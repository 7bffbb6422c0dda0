package state

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"axnav/describe"
)

// newLocalEnv creates a new LocalEnv instance with default values
func newLocalEnv() *LocalEnv {
	return &LocalEnv{
		start:    time.Now(),
		Language: language.English,
	}
}

// Prepare derives resources from loaded configuration: speech language,
// sentence splitter and user stylesheet. Should be called after Cfg and Log
// are set.
func (e *LocalEnv) Prepare() error {
	if e.Cfg == nil {
		return fmt.Errorf("configuration is not loaded")
	}
	log := e.Log
	if log == nil {
		log = zap.NewNop()
	}

	tag, err := language.Parse(e.Cfg.Speech.Language)
	if err != nil {
		return fmt.Errorf("unable to parse speech language '%s': %w", e.Cfg.Speech.Language, err)
	}
	e.Language = tag

	e.Splitter = nil
	if e.Cfg.Speech.Split {
		e.Splitter = describe.NewSplitter(tag, log)
	}

	e.UserStylesheet = nil
	if path := e.Cfg.Document.StylesheetPath; len(path) > 0 {
		if e.UserStylesheet, err = os.ReadFile(path); err != nil {
			return fmt.Errorf("unable to read user stylesheet: %w", err)
		}
		e.Rpt.Store(filepath.Join("config", filepath.Base(path)), path)
	}
	return nil
}
