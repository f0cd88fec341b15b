// Package axp defines the boundary contract with the external
// accessibility-translation bridge.
//
// The bridge itself — resolving delegate tokens to callbacks, walking
// the platform's element graph, converting coordinate spaces — lives in
// the host platform and is consumed, never reimplemented, here. These
// shapes exist so callers can type-check what they hand across the
// boundary: a typed request object goes over, a typed response object
// comes back, and no persistent ownership crosses in either direction.
package axp

// TranslationObject is an opaque cross-process handle identifying one
// accessibility element.
type TranslationObject struct {
	// PID is the process the element belongs to.
	PID int32
	// ObjectID is unique within that process.
	ObjectID uint64
	// BridgeToken is the opaque delegate token the bridge uses to
	// resolve the callback serving this element's process.
	BridgeToken string
	// RawElement optionally carries the serialized element bytes.
	RawElement []byte
	// IsApplication marks the element as an application root.
	IsApplication bool
}

// TranslatorRequest is one translation query. Requests are constructed
// per query, sent across the boundary, and discarded.
type TranslatorRequest struct {
	Translation *TranslationObject
	// RequestType and AttributeType are opaque codes the bridge
	// interprets; this layer does not assign meaning to them.
	RequestType   uint64
	AttributeType uint64
}

// TranslatorResponse is the bridge's answer to one request.
type TranslatorResponse struct {
	// Error is the bridge's error code; zero means success.
	Error uint64
	// Result is the opaque result payload, nil when no data applies.
	Result []byte
}

// EmptyResponse returns the response used when no data applies.
func EmptyResponse() *TranslatorResponse {
	return &TranslatorResponse{}
}

// Ok reports whether the response carries no error code.
func (r *TranslatorResponse) Ok() bool {
	return r.Error == 0
}

// Rect is a frame in one of the bridge's coordinate spaces.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Point is a location in the bridge's system coordinate space.
type Point struct {
	X float64
	Y float64
}

// Callback synchronously serves one translation request for the
// process a delegate token resolves to.
type Callback func(req *TranslatorRequest) (*TranslatorResponse, error)

// Bridge is the capability interface over the platform's translation
// machinery. Implementations are injected; there is no shared
// process-wide instance.
type Bridge interface {
	// CallbackForToken resolves a delegate token to the callback that
	// serves requests for that token's process.
	CallbackForToken(token string) (Callback, error)
	// ConvertFrame converts a platform frame to the system coordinate
	// space for the given token.
	ConvertFrame(frame Rect, token string) Rect
	// RootParent returns the root parent handle for the given token,
	// or nil when the token has none.
	RootParent(token string) (*TranslationObject, error)
}
