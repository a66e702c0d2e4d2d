package forms

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	Register(v)
	return v
}

func TestRegisterForm(t *testing.T) {
	v := newValidator()

	tests := []struct {
		name   string
		form   RegisterForm
		fields map[string][]string
	}{
		{
			name: "valid",
			form: RegisterForm{Username: "alice", Email: "alice@example.com", Password1: "s3cretpass", Password2: "s3cretpass"},
		},
		{
			name: "missing username",
			form: RegisterForm{Email: "alice@example.com", Password1: "s3cretpass", Password2: "s3cretpass"},
			fields: map[string][]string{
				"username": {"This field is required."},
			},
		},
		{
			name: "mismatched passwords",
			form: RegisterForm{Username: "alice", Email: "alice@example.com", Password1: "s3cretpass", Password2: "different1"},
			fields: map[string][]string{
				"password2": {"The two password fields didn't match."},
			},
		},
		{
			name: "short numeric password",
			form: RegisterForm{Username: "alice", Email: "alice@example.com", Password1: "1234", Password2: "1234"},
			fields: map[string][]string{
				"password1": {"Ensure this value has at least 8 characters."},
			},
		},
		{
			name: "bad username and email",
			form: RegisterForm{Username: "al ice", Email: "nope", Password1: "s3cretpass", Password2: "s3cretpass"},
			fields: map[string][]string{
				"username": {"Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."},
				"email":    {"Enter a valid email address."},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Struct(tt.form)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.fields, FieldErrors(err))
		})
	}
}

func TestPostForm_CaptionLength(t *testing.T) {
	v := newValidator()

	err := v.Struct(PostForm{Caption: strings.Repeat("a", 256)})
	require.Error(t, err)
	assert.Equal(t, []string{"Ensure this value has at most 255 characters."}, FieldErrors(err)["caption"])

	assert.NoError(t, v.Struct(PostForm{Caption: strings.Repeat("a", 255), Tags: "one, two"}))
}

func TestCommentForm_ContentRequired(t *testing.T) {
	v := newValidator()

	err := v.Struct(CommentForm{Tags: "x"})
	require.Error(t, err)
	assert.Contains(t, FieldErrors(err), "content")
}

func TestFieldErrors_NonValidationError(t *testing.T) {
	fields := FieldErrors(errors.New("unexpected EOF"))
	assert.Equal(t, map[string][]string{NonFieldErrors: {"unexpected EOF"}}, fields)
}
