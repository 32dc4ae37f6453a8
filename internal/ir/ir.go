// Package ir defines OperationIR, the intermediate representation spec.md
// §3 normalizes every OpenAPI operation into: lowering produces it, and
// classification, pagination detection, and emission run over it. Grounded on
// progenitor-impl's method.rs (OperationMethod, OperationParameter,
// OperationResponse and friends).
package ir

import "sort"

// HTTPMethod is the normalized, upper-case HTTP verb of an operation.
type HTTPMethod string

const (
	MethodGet     HTTPMethod = "GET"
	MethodPost    HTTPMethod = "POST"
	MethodPut     HTTPMethod = "PUT"
	MethodDelete  HTTPMethod = "DELETE"
	MethodPatch   HTTPMethod = "PATCH"
	MethodHead    HTTPMethod = "HEAD"
	MethodOptions HTTPMethod = "OPTIONS"
	MethodTrace   HTTPMethod = "TRACE"
)

// TypeID identifies a type produced by the TypeSpace schema-to-type
// compiler (internal/typespace). It is opaque to everything downstream of
// typespace except for equality comparison.
type TypeID string

// ParamKind distinguishes where a parameter is carried on the wire.
type ParamKind int

const (
	ParamPath ParamKind = iota
	ParamQuery
	ParamHeader
	ParamBody
)

func (k ParamKind) String() string {
	switch k {
	case ParamPath:
		return "path"
	case ParamQuery:
		return "query"
	case ParamHeader:
		return "header"
	case ParamBody:
		return "body"
	default:
		return "unknown"
	}
}

// BodyContentKind enumerates the request/response body encodings the
// generator understands, per method.rs's BodyContentType.
type BodyContentKind int

const (
	BodyOctetStream BodyContentKind = iota
	BodyJSON
	BodyFormURLEncoded
	BodyText // Mime carries the exact text/* media type, e.g. "text/csv"
)

// BodyContentType is a parsed request/response media type.
type BodyContentType struct {
	Kind BodyContentKind
	Mime string // only meaningful when Kind == BodyText
}

// ParseBodyContentType parses a media type string per method.rs's
// BodyContentType::FromStr: split on ';' (discarding parameters like
// charset), then prefix-match. Unknown types fall back to BodyOctetStream;
// callers should raise a CategoryUnknownContentType diagnostic in that case
// rather than treating it as fatal.
func ParseBodyContentType(mediaType string) (BodyContentType, bool) {
	base := mediaType
	if i := indexByte(base, ';'); i >= 0 {
		base = base[:i]
	}
	switch {
	case base == "application/octet-stream":
		return BodyContentType{Kind: BodyOctetStream}, true
	case base == "application/json":
		return BodyContentType{Kind: BodyJSON}, true
	case base == "application/x-www-form-urlencoded":
		return BodyContentType{Kind: BodyFormURLEncoded}, true
	case len(base) >= 5 && base[:5] == "text/":
		return BodyContentType{Kind: BodyText, Mime: base}, true
	default:
		return BodyContentType{Kind: BodyOctetStream}, false
	}
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}
	return -1
}

// ParamTypeRef is either a concrete Type(TypeID) or RawBody (an
// unvalidated io.Reader-shaped body, used for octet-stream/text payloads).
type ParamTypeRef struct {
	IsRawBody bool
	Type      TypeID // zero value when IsRawBody
}

// OperationParameter is one normalized operation input.
type OperationParameter struct {
	Name            string // sanitized Go identifier
	APIName         string // original wire name
	Kind            ParamKind
	Required        bool            // meaningful for Query/Header; Path is always required
	BodyContentType BodyContentType // only meaningful when Kind == ParamBody
	TypeRef         ParamTypeRef
}

// ResponseStatusKind distinguishes a literal status code, a status-code
// range, or the OpenAPI "default" bucket.
type ResponseStatusKind int

const (
	StatusCode ResponseStatusKind = iota
	StatusRange
	StatusDefault
)

// ResponseStatus is a status key as used in an OpenAPI responses object.
type ResponseStatus struct {
	Kind  ResponseStatusKind
	Code  uint16 // meaningful when Kind == StatusCode
	Range uint8  // first digit 2..=5, meaningful when Kind == StatusRange
}

// ToValue returns the ordering value used to sort responses: numeric code
// for StatusCode, Range*100 for StatusRange, 1000 for StatusDefault.
// Grounded on OperationResponseStatus::to_value in method.rs.
func (s ResponseStatus) ToValue() int {
	switch s.Kind {
	case StatusCode:
		return int(s.Code)
	case StatusRange:
		return int(s.Range) * 100
	default:
		return 1000
	}
}

// IsSuccessOrDefault reports whether this status can carry a 2xx response.
func (s ResponseStatus) IsSuccessOrDefault() bool {
	switch s.Kind {
	case StatusCode:
		return s.Code >= 200 && s.Code < 300
	case StatusRange:
		return s.Range == 2
	default:
		return true
	}
}

// IsErrorOrDefault reports whether this status can carry a non-2xx response.
func (s ResponseStatus) IsErrorOrDefault() bool {
	switch s.Kind {
	case StatusCode:
		return s.Code < 200 || s.Code >= 300
	case StatusRange:
		return s.Range != 2
	default:
		return true
	}
}

// VariantName is the identifier fragment spec.md assigns a response
// variant: "Status{code}" for a literal code, "Status{N}xx" for a range,
// and "Default" for the default bucket.
func (s ResponseStatus) VariantName() string {
	switch s.Kind {
	case StatusCode:
		return statusName(int(s.Code))
	case StatusRange:
		return statusRangeName(int(s.Range))
	default:
		return "Default"
	}
}

func statusName(code int) string {
	return "Status" + itoa(code)
}

func statusRangeName(r int) string {
	return "Status" + itoa(r) + "xx"
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [8]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// ResponseKind is the payload shape of a single status/response pairing.
type ResponseKind int

const (
	// ResponseKindType carries a decoded value of the named TypeID.
	ResponseKindType ResponseKind = iota
	// ResponseKindNone is a body-less response (e.g. 204).
	ResponseKindNone
	// ResponseKindRaw exposes the response body as undecoded bytes
	// (runtime.ResponseValueFromRaw reads it into a []byte).
	ResponseKindRaw
	// ResponseKindUpgrade is a protocol upgrade (websocket).
	ResponseKindUpgrade
	// ResponseKindMultiple is a synthesized enum built by
	// internal/classify: over a success group with more than one distinct
	// kind and at least one Type(_), or over any non-empty error group.
	ResponseKindMultiple
)

// ResponseVariant pairs a status with the response it decodes to, used
// only inside a ResponseKindMultiple's Variants. Kind lets a variant carry
// any of the shapes a single response can (Type, None, Raw, Upgrade), not
// just a decoded JSON type.
type ResponseVariant struct {
	Status ResponseStatus
	Kind   ResponseKind
	Type   TypeID // meaningful when Kind == ResponseKindType
}

// OperationResponse is one entry of an operation's normalized response set.
type OperationResponse struct {
	Status ResponseStatus
	Kind   ResponseKind
	Type   TypeID // meaningful when Kind == ResponseKindType

	// Populated only when Kind == ResponseKindMultiple.
	Variants []ResponseVariant
	EnumName string // e.g. "{OperationId}Response" or "{OperationId}Error"

	// HasUnknownValue marks an error-side Multiple response: classify.Classify
	// always synthesizes one of these whenever an operation declares at
	// least one error response, so callers can recognize an unexpected
	// status code rather than failing closed. Never set on the success side.
	HasUnknownValue bool
}

// SortResponses orders responses by ResponseStatus.ToValue(), matching the
// deterministic emission ordering spec.md §5 requires.
func SortResponses(responses []OperationResponse) {
	sort.SliceStable(responses, func(i, j int) bool {
		return responses[i].Status.ToValue() < responses[j].Status.ToValue()
	})
}

// PaginationInfo is attached to an operation when internal/paginate's six
// gates all pass. FirstPageParams is advisory only per SPEC_FULL.md's
// "Supplemented features" note — never validated against Params.
type PaginationInfo struct {
	ItemType        TypeID
	FirstPageParams []string
}

// OperationIR is the fully normalized representation of one OpenAPI
// operation, produced by internal/lowering and then processed by
// internal/classify, internal/paginate, and internal/emitter.
type OperationIR struct {
	OperationID string
	Tags        []string
	Method      HTTPMethod
	Path        string // raw OpenAPI path string, parsed by internal/pathtemplate
	Summary     string
	Description string

	Params     []OperationParameter // ordered: path, then query, then header, then body
	Responses  []OperationResponse  // sorted by ResponseStatus.ToValue()
	Pagination *PaginationInfo      // nil unless internal/paginate detected it
	Websocket  bool
}
