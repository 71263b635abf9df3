package main

import (
	"github.com/rs/zerolog/log"
	"go.uber.org/fx/fxevent"
)

// fxLogger routes fx lifecycle events into zerolog instead of fx's default stderr printer.
type fxLogger struct{}

func newFxLogger() fxevent.Logger {
	return fxLogger{}
}

func (fxLogger) LogEvent(event fxevent.Event) {
	switch e := event.(type) {
	case *fxevent.Provided:
		if e.Err != nil {
			log.Error().Err(e.Err).Str("constructor", e.ConstructorName).Msg("fx: provide failed")
		}
	case *fxevent.Invoked:
		if e.Err != nil {
			log.Error().Err(e.Err).Str("function", e.FunctionName).Msg("fx: invoke failed")
		}
	case *fxevent.OnStartExecuted:
		if e.Err != nil {
			log.Error().Err(e.Err).Str("callee", e.FunctionName).Msg("fx: OnStart hook failed")
		}
	case *fxevent.OnStopExecuted:
		if e.Err != nil {
			log.Error().Err(e.Err).Str("callee", e.FunctionName).Msg("fx: OnStop hook failed")
		}
	case *fxevent.Started:
		if e.Err != nil {
			log.Error().Err(e.Err).Msg("fx: start failed")
		} else {
			log.Debug().Msg("fx: started")
		}
	case *fxevent.Stopped:
		if e.Err != nil {
			log.Error().Err(e.Err).Msg("fx: stop failed")
		}
	case *fxevent.LoggerInitialized:
		if e.Err != nil {
			log.Error().Err(e.Err).Msg("fx: custom logger initialization failed")
		}
	}
}
