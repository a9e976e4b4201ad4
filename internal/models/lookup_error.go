package models

import "errors"

// ErrorKind is the user-visible class of a failed lookup.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindEmptyQuery
	KindCityNotFound
	KindNetwork
)

var kindMessages = map[ErrorKind]string{
	KindEmptyQuery:   "Please enter a city name.",
	KindCityNotFound: "City not found.",
	KindNetwork:      "Unable to fetch weather data. Try again later.",
}

var kindNames = map[ErrorKind]string{
	KindNone:         "success",
	KindEmptyQuery:   "empty_query",
	KindCityNotFound: "city_not_found",
	KindNetwork:      "network_error",
}

// Message returns the text shown to the user for this kind.
func (k ErrorKind) Message() string {
	return kindMessages[k]
}

func (k ErrorKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// LookupError is the only error type the weather pipeline returns.
type LookupError struct {
	Kind ErrorKind
	Err  error
}

func NewLookupError(kind ErrorKind, cause error) *LookupError {
	return &LookupError{Kind: kind, Err: cause}
}

func (e *LookupError) Error() string {
	return e.Kind.Message()
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// Is matches another *LookupError of the same kind, so the sentinels below
// work with errors.Is regardless of the wrapped cause.
func (e *LookupError) Is(target error) bool {
	t, ok := target.(*LookupError)
	if !ok {
		return false
	}
	return t.Err == nil && t.Kind == e.Kind
}

var (
	ErrEmptyQuery   = &LookupError{Kind: KindEmptyQuery}
	ErrCityNotFound = &LookupError{Kind: KindCityNotFound}
	ErrNetwork      = &LookupError{Kind: KindNetwork}
)

// KindOf classifies err. A nil error is KindNone; anything that is not a
// *LookupError is treated as a network failure.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}
	var le *LookupError
	if errors.As(err, &le) {
		return le.Kind
	}
	return KindNetwork
}
