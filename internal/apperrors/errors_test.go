package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	cause := errors.New("connection reset")

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{name: "validation", err: Validation("bad"), want: KindValidation},
		{name: "unauthorized", err: Unauthorized("no"), want: KindUnauthorized},
		{name: "forbidden", err: Forbidden("no"), want: KindForbidden},
		{name: "not found", err: NotFound("gone"), want: KindNotFound},
		{name: "dependency", err: Dependency("db", cause), want: KindDependency},
		{name: "wrapped", err: fmt.Errorf("outer: %w", NotFound("gone")), want: KindNotFound},
		{name: "plain", err: cause, want: KindDependency},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestMessageHidesCause(t *testing.T) {
	cause := errors.New("dial tcp 10.0.0.1:27017: i/o timeout")
	err := Dependency("Error fetching hotels", cause)

	assert.Equal(t, "Error fetching hotels", MessageOf(err))
	assert.Contains(t, err.Error(), "i/o timeout")
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Internal server error", MessageOf(cause))
}
