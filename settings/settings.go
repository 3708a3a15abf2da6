// Package settings persists player preferences between runs.
package settings

import (
	"encoding/json"
	"log"

	"github.com/quasilyte/gdata"
)

const settingsKey = "settings"

// SavedSettings represents the settings data stored on disk
type SavedSettings struct {
	Fullscreen   bool   `json:"fullscreen"`
	WindowWidth  int    `json:"windowWidth"`
	WindowHeight int    `json:"windowHeight"`
	PlayerName   string `json:"playerName"`
}

// Store is the subset of *gdata.Manager used here.
type Store interface {
	LoadItem(itemKey string) ([]byte, error)
	SaveItem(itemKey string, data []byte) error
}

var store Store

// Init opens the gdata store for the application.
func Init(appName string) error {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		log.Printf("[settings] could not initialize persistence: %v", err)
		return err
	}
	store = m
	return nil
}

// Use replaces the backing store.
func Use(s Store) {
	store = s
}

// Load reads settings from disk. It returns nil when nothing was saved yet
// or persistence is unavailable.
func Load() (*SavedSettings, error) {
	if store == nil {
		return nil, nil
	}

	data, err := store.LoadItem(settingsKey)
	if err != nil {
		log.Printf("[settings] could not load settings: %v", err)
		return nil, nil
	}
	if len(data) == 0 {
		return nil, nil
	}

	var s SavedSettings
	if err := json.Unmarshal(data, &s); err != nil {
		log.Printf("[settings] could not parse saved settings: %v", err)
		return nil, err
	}
	return &s, nil
}

// Save writes settings to disk.
func Save(s *SavedSettings) error {
	if store == nil || s == nil {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := store.SaveItem(settingsKey, data); err != nil {
		log.Printf("[settings] could not save settings: %v", err)
		return err
	}
	return nil
}
