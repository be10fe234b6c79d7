// Package srd is the client for the D&D 5e SRD API, used to resolve spell
// levels on cast and class spellcasting data when seeding characters.
package srd

//go:generate mockgen -destination=mock/mock_client.go -package=srdmock github.com/mythweaver/mythweaver/internal/clients/srd Client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/fadedpez/dnd5e-api/clients/dnd5e"
)

// Client defines the interface for SRD lookups the combat engine needs
type Client interface {
	// GetSpell fetches a spell by its SRD key (e.g. "magic-missile")
	GetSpell(ctx context.Context, spellID string) (*Spell, error)

	// GetClassSpellcasting fetches level-1 spellcasting data for a class,
	// used to seed a slot pool when a character record carries none
	GetClassSpellcasting(ctx context.Context, classID string) (*ClassSpellcasting, error)
}

// Spell is the subset of SRD spell data the combat engine cares about
type Spell struct {
	ID    string
	Name  string
	Level int
}

// ClassSpellcasting is level-1 spellcasting data for a class
type ClassSpellcasting struct {
	CantripsKnown    int
	SpellsKnown      int
	SpellSlotsLevel1 int
}

type client struct {
	dnd5eClient dnd5e.Interface
}

// Config contains configuration options for the SRD client.
type Config struct {
	// BaseURL for the D&D 5e API (optional, defaults to https://www.dnd5eapi.co/api/2014/)
	BaseURL string
	// HTTPTimeout for API requests (optional, defaults to 30 seconds)
	HTTPTimeout time.Duration
	// CacheTTL for the cached client (optional, defaults to 24 hours)
	CacheTTL time.Duration
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.dnd5eapi.co/api/2014/"
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 30 * time.Second
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = 24 * time.Hour
	}
	return nil
}

// New creates a new SRD client with the given configuration.
func New(cfg *Config) (Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	baseClient, err := dnd5e.NewDND5eAPI(&dnd5e.DND5eAPIConfig{
		Client:  httpClient,
		BaseURL: cfg.BaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create D&D 5e API client: %w", err)
	}

	// Spell data never changes mid-session; cache aggressively
	cachedClient := dnd5e.NewCachedClient(baseClient, cfg.CacheTTL)

	return &client{dnd5eClient: cachedClient}, nil
}

func (c *client) GetSpell(_ context.Context, spellID string) (*Spell, error) {
	spell, err := c.dnd5eClient.GetSpell(spellID)
	if err != nil {
		return nil, fmt.Errorf("failed to get spell %s: %w", spellID, err)
	}

	return &Spell{
		ID:    spell.Key,
		Name:  spell.Name,
		Level: spell.SpellLevel,
	}, nil
}

func (c *client) GetClassSpellcasting(_ context.Context, classID string) (*ClassSpellcasting, error) {
	level1, err := c.dnd5eClient.GetClassLevel(classID, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to get class level 1 for %s: %w", classID, err)
	}

	if level1 == nil || level1.SpellCasting == nil {
		return nil, nil // class has no spellcasting
	}

	return &ClassSpellcasting{
		CantripsKnown:    level1.SpellCasting.CantripsKnown,
		SpellsKnown:      level1.SpellCasting.SpellsKnown,
		SpellSlotsLevel1: level1.SpellCasting.SpellSlotsLevel1,
	}, nil
}
