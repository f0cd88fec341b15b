package axp

import (
	"errors"
	"fmt"
)

// ErrNoCallback indicates the bridge resolved no callback for a token.
var ErrNoCallback = errors.New("no callback for token")

// Client dispatches translation requests through an injected Bridge.
// It holds no state beyond the bridge reference and is safe for
// concurrent use.
type Client struct {
	bridge Bridge
}

// NewClient wraps a bridge. The bridge is a required collaborator;
// callers construct one client per bridge and pass it explicitly.
func NewClient(bridge Bridge) *Client {
	return &Client{bridge: bridge}
}

// Query sends one request for the element and returns the bridge's
// response. A nil response from the callback is normalized to the
// empty response.
func (c *Client) Query(obj *TranslationObject, requestType, attributeType uint64) (*TranslatorResponse, error) {
	if obj == nil {
		return nil, errors.New("nil translation object")
	}
	cb, err := c.bridge.CallbackForToken(obj.BridgeToken)
	if err != nil {
		return nil, fmt.Errorf("resolve token %q: %w", obj.BridgeToken, err)
	}
	if cb == nil {
		return nil, fmt.Errorf("token %q: %w", obj.BridgeToken, ErrNoCallback)
	}

	resp, err := cb(&TranslatorRequest{
		Translation:   obj,
		RequestType:   requestType,
		AttributeType: attributeType,
	})
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return EmptyResponse(), nil
	}
	return resp, nil
}

// SystemFrame converts an element's platform frame to the system
// coordinate space.
func (c *Client) SystemFrame(obj *TranslationObject, frame Rect) Rect {
	if obj == nil {
		return frame
	}
	return c.bridge.ConvertFrame(frame, obj.BridgeToken)
}

// Root returns the application root handle above the element, or nil
// when the bridge reports none.
func (c *Client) Root(obj *TranslationObject) (*TranslationObject, error) {
	if obj == nil {
		return nil, errors.New("nil translation object")
	}
	return c.bridge.RootParent(obj.BridgeToken)
}
