// Copyright (c) 2026 Dana Tavenner
// Licensed under the MIT License. See LICENSE file in the project root.

package backdrop

import "github.com/rs/zerolog"

// NavigationObserver receives the load lifecycle of the backdrop's web view.
// All callbacks are fire-and-forget, delivered on the update thread in the
// causal order of the underlying load. They are advisory: nothing the
// observer does (or fails to do) changes event routing.
type NavigationObserver interface {
	// LoadStarted fires when the view begins loading the target.
	LoadStarted()
	// LoadFinished fires when the load completes.
	LoadFinished()
	// LoadFailed fires when the load fails after content was committed.
	LoadFailed(description string)
	// ProvisionalLoadFailed fires when the load fails before any content
	// was committed (DNS failure, refused connection, bad URL).
	ProvisionalLoadFailed(description string)
}

// NopObserver discards every lifecycle event. It is the default when no
// observer is configured.
type NopObserver struct{}

func (NopObserver) LoadStarted()                 {}
func (NopObserver) LoadFinished()                {}
func (NopObserver) LoadFailed(string)            {}
func (NopObserver) ProvisionalLoadFailed(string) {}

// LogObserver writes lifecycle events to a zerolog logger.
type LogObserver struct {
	log zerolog.Logger
}

// NewLogObserver returns an observer logging to log.
func NewLogObserver(log zerolog.Logger) *LogObserver {
	return &LogObserver{log: log}
}

func (o *LogObserver) LoadStarted() {
	o.log.Info().Msg("backdrop load started")
}

func (o *LogObserver) LoadFinished() {
	o.log.Info().Msg("backdrop load finished")
}

func (o *LogObserver) LoadFailed(description string) {
	o.log.Error().Str("reason", description).Msg("backdrop load failed")
}

func (o *LogObserver) ProvisionalLoadFailed(description string) {
	o.log.Error().Str("reason", description).Msg("backdrop provisional load failed")
}
