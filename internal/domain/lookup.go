package domain

// LookupErrorKind classifies a failed lookup
type LookupErrorKind int

const (
	// EmptyQuery is local validation; no request is made
	EmptyQuery LookupErrorKind = iota + 1
	// LocationNotFound is the provider saying the city does not exist
	LocationNotFound
	// TransientFailure covers transport, decoding and non-404 status errors
	TransientFailure
)

func (k LookupErrorKind) String() string {
	switch k {
	case EmptyQuery:
		return "empty_query"
	case LocationNotFound:
		return "location_not_found"
	case TransientFailure:
		return "transient_failure"
	default:
		return "unknown"
	}
}

// User-facing messages, one per kind.
const (
	MsgEmptyQuery       = "Please enter the city first"
	MsgLocationNotFound = "Oops! Location not found"
	MsgTransientFailure = "An error occurred while fetching data"
)

// LookupError is the user-facing outcome of a failed lookup
type LookupError struct {
	Kind    LookupErrorKind `json:"-"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
}

// NewLookupError builds the error for kind with its fixed message
func NewLookupError(kind LookupErrorKind) *LookupError {
	e := &LookupError{Kind: kind, Code: kind.String()}
	switch kind {
	case EmptyQuery:
		e.Message = MsgEmptyQuery
	case LocationNotFound:
		e.Message = MsgLocationNotFound
	default:
		e.Kind = TransientFailure
		e.Code = TransientFailure.String()
		e.Message = MsgTransientFailure
	}
	return e
}

func (e *LookupError) Error() string {
	return e.Message
}

// Illustration returns the image shown alongside the message, if any.
// Only LocationNotFound has one.
func (e *LookupError) Illustration() (Illustration, bool) {
	if e.Kind == LocationNotFound {
		return IllustrationNotFound, true
	}
	return "", false
}

// LookupResult is exactly one of a record or an error
type LookupResult struct {
	Record *WeatherRecord
	Err    *LookupError
}

// Found wraps a successful record
func Found(rec WeatherRecord) LookupResult {
	return LookupResult{Record: &rec}
}

// Failed wraps a lookup error of the given kind
func Failed(kind LookupErrorKind) LookupResult {
	return LookupResult{Err: NewLookupError(kind)}
}

// OK reports whether the lookup produced a record
func (r LookupResult) OK() bool {
	return r.Err == nil && r.Record != nil
}
