package calculation

// Logger receives diagnostic messages from a calculation. Implementations
// must be safe for concurrent use when shared between goroutines.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Warnf(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}

// Option configures a single calculation call.
type Option func(*options)

type options struct {
	logger Logger
}

// WithLogger routes diagnostics of this call to l. A nil logger is ignored.
func WithLogger(l Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{logger: NopLogger{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
