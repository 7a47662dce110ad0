// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package form collects search parameters from user input and decides
// whether a submission may proceed to the query service.
package form

import (
	"errors"

	"github.com/pdiddy/trait-explorer/internal/notify"
	"github.com/pdiddy/trait-explorer/pkg/types"
)

// ErrBusy is returned when a submission arrives while a search is in flight.
// The submission is dropped without notification.
var ErrBusy = errors.New("a search is already in progress")

// ValidationError reports a submission with no search parameters.
type ValidationError struct {
	Params types.SearchParams
}

func (e *ValidationError) Error() string {
	return "enter at least one search parameter"
}

// SearchFunc receives an accepted submission.
type SearchFunc func(params types.SearchParams)

// Form holds the four text inputs. Values are passed to the search callback
// verbatim; surrounding whitespace is only ignored when deciding whether a
// field is blank.
type Form struct {
	Crop      string
	Variety   string
	Trait     string
	Geography string

	onSearch SearchFunc
	notifier notify.Notifier
}

// New returns an empty form that hands accepted submissions to onSearch and
// reports validation failures to n.
func New(onSearch SearchFunc, n notify.Notifier) *Form {
	if n == nil {
		n = notify.Nop
	}
	return &Form{onSearch: onSearch, notifier: n}
}

// Params returns the current field values.
func (f *Form) Params() types.SearchParams {
	return types.SearchParams{
		Crop:      f.Crop,
		Variety:   f.Variety,
		Trait:     f.Trait,
		Geography: f.Geography,
	}
}

// SetParams replaces all four field values.
func (f *Form) SetParams(p types.SearchParams) {
	f.Crop = p.Crop
	f.Variety = p.Variety
	f.Trait = p.Trait
	f.Geography = p.Geography
}

// Reset clears every field.
func (f *Form) Reset() {
	f.SetParams(types.SearchParams{})
}

// Submit validates the form and, if it passes, invokes the search callback
// exactly once. While isLoading is true the submission is suppressed and
// ErrBusy is returned. A form whose fields are all blank emits a Validation
// notification and returns a *ValidationError without invoking the callback.
func (f *Form) Submit(isLoading bool) error {
	if isLoading {
		return ErrBusy
	}

	params := f.Params()
	if params.IsBlank() {
		f.notifier.Notify(notify.EmptySearch())
		return &ValidationError{Params: params}
	}

	if f.onSearch != nil {
		f.onSearch(params)
	}
	return nil
}
