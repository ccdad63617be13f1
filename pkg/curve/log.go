package curve

import "go.uber.org/zap"

var log = zap.NewNop()

// SetLogger routes parse fallback warnings to l. A nil logger discards them.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	log = l
}
