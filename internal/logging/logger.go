package logging

import "github.com/rs/zerolog"

// Fields is a minimal structured field map for logs.
type Fields map[string]any

// Logger is the leveled logger library packages accept. Adapters for other
// logging stacks live in subpackages.
type Logger interface {
	Debug(msg string, f Fields)
	Info(msg string, f Fields)
	Warn(msg string, f Fields)
	Error(msg string, f Fields)
}

type Nop struct{}

func (Nop) Debug(string, Fields) {}
func (Nop) Info(string, Fields)  {}
func (Nop) Warn(string, Fields)  {}
func (Nop) Error(string, Fields) {}

// Zerolog adapts a zerolog.Logger.
type Zerolog struct{ L zerolog.Logger }

func (z Zerolog) Debug(msg string, f Fields) { z.L.Debug().Fields(map[string]any(f)).Msg(msg) }
func (z Zerolog) Info(msg string, f Fields)  { z.L.Info().Fields(map[string]any(f)).Msg(msg) }
func (z Zerolog) Warn(msg string, f Fields)  { z.L.Warn().Fields(map[string]any(f)).Msg(msg) }
func (z Zerolog) Error(msg string, f Fields) { z.L.Error().Fields(map[string]any(f)).Msg(msg) }
