package orchestrator

import "github.com/rs/zerolog"

// LogPublisher writes events to a zerolog logger at debug level.
type LogPublisher struct {
	log zerolog.Logger
}

func NewLogPublisher(l zerolog.Logger) *LogPublisher {
	return &LogPublisher{log: l.With().Str("component", "events").Logger()}
}

func (p *LogPublisher) Publish(e Event) {
	p.log.Debug().
		Str("event_id", e.ID).
		Str("event", e.Name).
		Str("model", e.ModelID).
		Fields(e.Fields).
		Msg("orchestrator event")
}
