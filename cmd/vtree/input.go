package main

import (
	"os"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// readView parses the HTML fragment at path into a view tree. "-" reads
// standard input.
func readView(path string) (*vdom.VNode, error) {
	f := os.Stdin
	if path != "-" {
		var err error
		f, err = os.Open(path)
		if err != nil {
			return nil, errors.New("E300").Wrap(err).
				WithSuggestion("Check that " + path + " exists and is readable")
		}
		defer f.Close()
	}

	v, err := vdom.ParseHTML(f)
	if err != nil {
		return nil, errors.New("E301").
			WithDetail(path + ": " + err.Error()).
			WithSuggestion("Wrap the fragment in a single element, for example <div>...</div>")
	}
	return v, nil
}
