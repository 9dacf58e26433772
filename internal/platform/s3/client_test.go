package s3

import (
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// apiError is a minimal smithy.APIError for exercising the code fallback.
type apiError struct {
	code string
}

func (e *apiError) Error() string                 { return e.code }
func (e *apiError) ErrorCode() string             { return e.code }
func (e *apiError) ErrorMessage() string          { return e.code }
func (e *apiError) ErrorFault() smithy.ErrorFault { return smithy.FaultUnknown }

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil error", nil, false},
		{"plain error", errors.New("boom"), false},
		{"typed NoSuchBucket", &types.NoSuchBucket{}, true},
		{"typed NotFound", &types.NotFound{}, true},
		{"api code NotFound", &apiError{code: "NotFound"}, true},
		{"api code NoSuchBucket", &apiError{code: "NoSuchBucket"}, true},
		{"api code 404", &apiError{code: "404"}, true},
		{"api code AccessDenied", &apiError{code: "AccessDenied"}, false},
		{"wrapped typed error", wrap(&types.NotFound{}), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := isNotFoundError(tt.err)
			if got != tt.want {
				t.Errorf("isNotFoundError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func wrap(err error) error {
	return errors.Join(errors.New("outer"), err)
}

func TestNewClient(t *testing.T) {
	client, err := NewClient(t.Context(), "https://s3.example.com", "AK", "SK")
	require.NoError(t, err)
	assert.NotNil(t, client)
}
