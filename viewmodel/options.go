package viewmodel

import (
	"maps"

	"github.com/s0up4200/cinemaxx/tmdb"
)

// Option configures a list or search view model
type Option func(*options)

type options struct {
	page   int
	params tmdb.Params
}

func newOptions(opts []Option) options {
	o := options{page: 1}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithPage sets the page requested by every fetch
func WithPage(page int) Option {
	return func(o *options) {
		if page > 0 {
			o.page = page
		}
	}
}

// WithParams adds extra request parameters to every fetch (e.g. language, region)
func WithParams(params tmdb.Params) Option {
	return func(o *options) {
		if o.params == nil {
			o.params = make(tmdb.Params, len(params))
		}
		maps.Copy(o.params, params)
	}
}
