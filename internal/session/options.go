package session

import (
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"
)

// ReanswerPolicy decides whether answers may change while a question is revealed.
type ReanswerPolicy string

const (
	// ReanswerAllow keeps inputs editable after reveal.
	ReanswerAllow ReanswerPolicy = "allow"
	// ReanswerLock rejects answer changes for the revealed question.
	ReanswerLock ReanswerPolicy = "lock"
)

// ShufflePolicy decides how long a matrix layout lives.
type ShufflePolicy string

const (
	// ShufflePerRender draws a fresh row/column order every time the question is shown.
	ShufflePerRender ShufflePolicy = "per_render"
	// ShufflePerSession draws the order once per question and reuses it.
	ShufflePerSession ShufflePolicy = "per_session"
	// ShuffleNone shows matrices in canonical order.
	ShuffleNone ShufflePolicy = "none"
)

// Options configures a session.
type Options struct {
	// ID names the session in logs. Empty generates a UUID.
	ID string
	// KeepOrder presents questions in document order instead of shuffling them.
	KeepOrder     bool
	MatrixShuffle ShufflePolicy
	Reanswer      ReanswerPolicy
	// Rand drives every shuffle. Nil seeds a new source.
	Rand   *rand.Rand
	Logger *zap.Logger
}

func (opts Options) withDefaults() (Options, error) {
	switch opts.MatrixShuffle {
	case "":
		opts.MatrixShuffle = ShufflePerRender
	case ShufflePerRender, ShufflePerSession, ShuffleNone:
	default:
		return opts, fmt.Errorf("invalid matrix shuffle policy %q (expected per_render|per_session|none)", opts.MatrixShuffle)
	}
	switch opts.Reanswer {
	case "":
		opts.Reanswer = ReanswerAllow
	case ReanswerAllow, ReanswerLock:
	default:
		return opts, fmt.Errorf("invalid reanswer policy %q (expected allow|lock)", opts.Reanswer)
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return opts, nil
}
