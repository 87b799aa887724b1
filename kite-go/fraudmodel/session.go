package fraudmodel

import (
	"github.com/google/uuid"
	"github.com/kiteco/fraudfilter/kite-go/jobposting"
	"github.com/kiteco/fraudfilter/kite-go/ranking"
	"github.com/kiteco/fraudfilter/kite-golib/kitelog"
)

// Session carries the configuration shared by the stages of a run. It is passed
// explicitly to each stage and never modified by them.
type Session struct {
	// RunID identifies the run in logs and artifacts, a random uuid is used if empty
	RunID   string
	Seed    int64
	Logger  *kitelog.Logger
	Trainer ranking.TrainerOptions
	// Schema of the records, jobposting.DefaultSchema() if empty
	Schema jobposting.Schema
}

// NewSession returns a session with the default trainer options and schema.
func NewSession(seed int64, logger *kitelog.Logger) *Session {
	return &Session{
		Seed:    seed,
		Logger:  logger,
		Trainer: ranking.DefaultTrainerOptions(),
		Schema:  jobposting.DefaultSchema(),
	}
}

func (s *Session) logger() *kitelog.Logger {
	if s.Logger == nil {
		return kitelog.Basic
	}
	return s.Logger
}

func (s *Session) runID() string {
	if s.RunID == "" {
		return uuid.New().String()
	}
	return s.RunID
}

func (s *Session) schema() jobposting.Schema {
	if len(s.Schema.Columns) == 0 {
		return jobposting.DefaultSchema()
	}
	return s.Schema
}
