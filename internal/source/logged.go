package source

import "go.uber.org/zap"

// Logged decorates a Source, logging every draw at debug level.
type Logged struct {
	src    Source
	logger *zap.Logger
}

// NewLogged wraps src.
//
// Precondition: src and logger must be non-nil.
func NewLogged(src Source, logger *zap.Logger) *Logged {
	return &Logged{src: src, logger: logger}
}

// Name returns the wrapped source's name.
func (l *Logged) Name() Key { return l.src.Name() }

// Close releases the wrapped source.
func (l *Logged) Close() error { return Close(l.src) }

// Draw delegates to the wrapped source and logs the outcome.
func (l *Logged) Draw() (Key, error) {
	k, err := l.src.Draw()
	if err != nil {
		l.logger.Debug("draw failed",
			zap.Stringer("source", l.src.Name()),
			zap.Error(err),
		)
		return k, err
	}
	l.logger.Debug("draw",
		zap.Stringer("source", l.src.Name()),
		zap.Stringer("outcome", k),
	)
	return k, nil
}
