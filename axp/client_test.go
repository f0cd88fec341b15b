package axp

import (
	"errors"
	"testing"
)

// stubBridge records dispatches for assertions.
type stubBridge struct {
	callback   Callback
	callbackErr error
	lastToken  string
	rootParent *TranslationObject
}

func (b *stubBridge) CallbackForToken(token string) (Callback, error) {
	b.lastToken = token
	return b.callback, b.callbackErr
}

func (b *stubBridge) ConvertFrame(frame Rect, token string) Rect {
	b.lastToken = token
	return Rect{X: frame.X + 100, Y: frame.Y + 50, Width: frame.Width, Height: frame.Height}
}

func (b *stubBridge) RootParent(token string) (*TranslationObject, error) {
	b.lastToken = token
	return b.rootParent, nil
}

func element() *TranslationObject {
	return &TranslationObject{PID: 321, ObjectID: 9, BridgeToken: "tok-1"}
}

func TestClient_QueryDispatchesThroughToken(t *testing.T) {
	var got *TranslatorRequest
	bridge := &stubBridge{
		callback: func(req *TranslatorRequest) (*TranslatorResponse, error) {
			got = req
			return &TranslatorResponse{Result: []byte("ok")}, nil
		},
	}

	resp, err := NewClient(bridge).Query(element(), 7, 11)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if bridge.lastToken != "tok-1" {
		t.Errorf("token = %q, want tok-1", bridge.lastToken)
	}
	if got.RequestType != 7 || got.AttributeType != 11 {
		t.Errorf("request codes = (%d, %d), want (7, 11)", got.RequestType, got.AttributeType)
	}
	if !resp.Ok() || string(resp.Result) != "ok" {
		t.Errorf("response = %+v", resp)
	}
}

func TestClient_QueryNormalizesNilResponse(t *testing.T) {
	bridge := &stubBridge{
		callback: func(*TranslatorRequest) (*TranslatorResponse, error) { return nil, nil },
	}

	resp, err := NewClient(bridge).Query(element(), 1, 2)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if !resp.Ok() || resp.Result != nil {
		t.Errorf("response = %+v, want empty", resp)
	}
}

func TestClient_QueryNoCallback(t *testing.T) {
	_, err := NewClient(&stubBridge{}).Query(element(), 1, 2)
	if !errors.Is(err, ErrNoCallback) {
		t.Errorf("error = %v, want ErrNoCallback", err)
	}
}

func TestClient_SystemFrame(t *testing.T) {
	client := NewClient(&stubBridge{})
	out := client.SystemFrame(element(), Rect{X: 10, Y: 20, Width: 30, Height: 40})
	if out.X != 110 || out.Y != 70 {
		t.Errorf("converted frame = %+v", out)
	}
}

func TestClient_Root(t *testing.T) {
	root := &TranslationObject{PID: 321, ObjectID: 1, IsApplication: true}
	client := NewClient(&stubBridge{rootParent: root})

	got, err := client.Root(element())
	if err != nil {
		t.Fatalf("Root failed: %v", err)
	}
	if got != root {
		t.Errorf("root = %+v, want application root", got)
	}
}
