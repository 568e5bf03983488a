package config

import "errors"

var (
	ErrInvalidWindow = errors.New("config: invalid window")
	ErrInvalidCount  = errors.New("config: particle count must not be negative")
	ErrInvalidSpeed  = errors.New("config: invalid speed range")
	ErrInvalidShape  = errors.New("config: invalid shape")
	ErrInvalidRecord = errors.New("config: invalid record settings")
	ErrUnknownPreset = errors.New("config: unknown preset")
)
