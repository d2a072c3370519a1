package dataset

// Option configures Load.
type Option func(*config)

type config struct {
	// strictReferences rejects employees whose department or manager is not
	// part of the loaded collections.
	strictReferences bool
}

func defaultConfig() *config {
	return &config{}
}

// WithStrictReferences makes Load verify department and manager references.
func WithStrictReferences(strict bool) Option {
	return func(c *config) {
		c.strictReferences = strict
	}
}
