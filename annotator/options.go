package annotator

import (
	"github.com/iw2rmb/mention/annotation"
	"github.com/iw2rmb/mention/commit"
	"github.com/iw2rmb/mention/match"
	"github.com/iw2rmb/mention/session"
)

// Option configures a Controller.
type Option func(*Controller)

// WithMatchOptions passes options to the trigger matcher.
func WithMatchOptions(opts ...match.Option) Option {
	return func(c *Controller) { c.matchOpts = append(c.matchOpts, opts...) }
}

// WithStoreOptions passes options to the annotation store.
func WithStoreOptions(opts ...annotation.Option) Option {
	return func(c *Controller) { c.storeOpts = append(c.storeOpts, opts...) }
}

// WithAutoCommit controls whether typing an exact candidate commits it
// without showing a list. Enabled by default.
func WithAutoCommit(on bool) Option {
	return func(c *Controller) { c.autoCommit = on }
}

// OnSessionChanged registers a listener for suggestion list changes.
func OnSessionChanged(fn func(session.State)) Option {
	return func(c *Controller) { c.onSession = append(c.onSession, fn) }
}

// OnCommit registers a listener for finished and rejected commits.
func OnCommit(fn func(commit.Outcome)) Option {
	return func(c *Controller) { c.onCommit = append(c.onCommit, fn) }
}
