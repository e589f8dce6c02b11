package storage

import "errors"

// Settings are per-application preferences.
type Settings struct {
	TutorialCompleted bool `json:"tutorialCompleted"`
}

// SettingsKey returns the kv key holding an application's settings.
func SettingsKey(app string) string {
	return app + "_settings"
}

// LoadSettings returns stored settings, or defaults when missing or unreadable.
func (s *Store) LoadSettings(app string) Settings {
	var st Settings
	err := s.GetJSON(SettingsKey(app), &st)
	if err != nil && !errors.Is(err, ErrNotFound) {
		s.logger.Warn("settings unreadable, using defaults", "app", app, "err", err)
		return Settings{}
	}
	return st
}

// SaveSettings stores settings.
func (s *Store) SaveSettings(app string, st Settings) error {
	return s.PutJSON(SettingsKey(app), st)
}
