package model

import (
	"errors"
	"time"
)

type Rules struct {
	PieceCooldown    time.Duration
	PawnInterval     time.Duration
	PawnCaptureDelay time.Duration
	KingLives        int
}

func DefaultRules() Rules {
	return Rules{
		PieceCooldown:    2 * time.Second,
		PawnInterval:     3 * time.Second,
		PawnCaptureDelay: 1 * time.Second,
		KingLives:        3,
	}
}

func (r Rules) Validate() error {
	if r.PieceCooldown <= 0 {
		return errors.New("piece cooldown must be positive")
	}
	if r.PawnInterval <= 0 {
		return errors.New("pawn interval must be positive")
	}
	if r.PawnCaptureDelay < 0 {
		return errors.New("pawn capture delay must not be negative")
	}
	if r.KingLives < 1 {
		return errors.New("kings need at least one life")
	}
	return nil
}
