package printful

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapAPIError(t *testing.T) {
	if WrapAPIError("ListOrders", nil, "") != nil {
		t.Error("nil error should stay nil")
	}

	base := errors.New("connection reset")
	wrapped := WrapAPIError("ListOrders", base, "offset 0")
	var apiErr *APIError
	if !errors.As(wrapped, &apiErr) || apiErr.Op != "ListOrders" || !errors.Is(wrapped, base) {
		t.Fatalf("wrapped = %v", wrapped)
	}

	inner := NewAPIError("NewClient", ErrMissingAPIKey, "")
	outer := fmt.Errorf("setup: %w", inner)
	if got := WrapAPIError("ListOrders", outer, "ignored"); got != outer {
		t.Errorf("existing APIError was wrapped again: %v", got)
	}
}
