package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError_Message(t *testing.T) {
	tests := []struct {
		name     string
		err      *DomainError
		expected string
	}{
		{
			name:     "default message only",
			err:      NewError(ErrKindItemNotFound),
			expected: "Requested item could not be found.",
		},
		{
			name:     "detail appended",
			err:      NewErrorWithDetail(ErrKindItemNotFound, "tag with id = 7 not found"),
			expected: "Requested item could not be found. tag with id = 7 not found",
		},
		{
			name:     "wrapped cause keeps message",
			err:      WrapError(ErrKindCurrencyServiceCallError, errors.New("boom"), "USD => EUR"),
			expected: "Calling the currency service failed. USD => EUR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("parse failure")
	err := WrapError(ErrKindExternalSourceCallError, cause, "")

	assert.True(t, errors.Is(err, cause))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, ErrorKind(""), KindOf(nil))
	assert.Equal(t, ErrKindUnknown, KindOf(errors.New("plain")))
	assert.Equal(t, ErrKindInvalidRequest, KindOf(NewError(ErrKindInvalidRequest)))

	// Wrapped with fmt.Errorf is still classified by its kind.
	wrapped := fmt.Errorf("handling request: %w", NewError(ErrKindItemAlreadyExist))
	assert.Equal(t, ErrKindItemAlreadyExist, KindOf(wrapped))
}

func TestIsKind(t *testing.T) {
	err := NewErrorWithDetail(ErrKindExternalSourceNotSupported, "gcp")

	assert.True(t, IsKind(err, ErrKindExternalSourceNotSupported))
	assert.False(t, IsKind(err, ErrKindItemNotFound))
}

func TestDefaultMessage_EveryKindHasOne(t *testing.T) {
	kinds := []ErrorKind{
		ErrKindItemNotFound,
		ErrKindItemAlreadyExist,
		ErrKindInvalidRequest,
		ErrKindExternalSourceNotSupported,
		ErrKindExternalSourceCallError,
		ErrKindCurrencyServiceCallError,
		ErrKindInvalidConfiguration,
		ErrKindUnknown,
	}
	seen := make(map[string]bool)
	for _, kind := range kinds {
		msg := DefaultMessage(kind)
		require.NotEmpty(t, msg)
		seen[msg] = true
	}
	// Messages are distinct per kind.
	assert.Len(t, seen, len(kinds))
}
