package accounts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jumpaku/accountd/internal/apperr"
)

func validParams() CreateParams {
	return CreateParams{
		LoginID:     "Login-id-123@example.com",
		Password:    "password-123",
		DisplayName: "表示名",
	}
}

func TestValidateCreateParams_Valid(t *testing.T) {
	t.Parallel()

	assert.Nil(t, validateCreateParams(validParams()))
}

func TestValidateCreateParams_BoundaryLengthsAccepted(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*CreateParams)
	}{
		{"loginId length 1", func(p *CreateParams) { p.LoginID = "A" }},
		{"loginId length 50", func(p *CreateParams) { p.LoginID = strings.Repeat("a", 50) }},
		{"password length 8", func(p *CreateParams) { p.Password = "12345678" }},
		{"password length 128", func(p *CreateParams) { p.Password = strings.Repeat("p", 128) }},
		{"displayName length 1", func(p *CreateParams) { p.DisplayName = "名" }},
		{"displayName length 50", func(p *CreateParams) { p.DisplayName = strings.Repeat("名", 50) }},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := validParams()
			tt.mutate(&p)
			assert.Nil(t, validateCreateParams(p))
		})
	}
}

func TestValidateCreateParams_Violations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*CreateParams)
	}{
		{"empty loginId", func(p *CreateParams) { p.LoginID = "" }},
		{"loginId with space", func(p *CreateParams) { p.LoginID = "1235678 gbnwm" }},
		{"loginId with newline", func(p *CreateParams) { p.LoginID = "1235678\ngbnwm" }},
		{"loginId length 51", func(p *CreateParams) { p.LoginID = strings.Repeat("a", 51) }},
		{"loginId non-ASCII", func(p *CreateParams) { p.LoginID = "ログインID" }},
		{"password length 7", func(p *CreateParams) { p.Password = "1234567" }},
		{"password length 129", func(p *CreateParams) { p.Password = strings.Repeat("p", 129) }},
		{"password with space", func(p *CreateParams) { p.Password = "pass word-123" }},
		{"password with tab", func(p *CreateParams) { p.Password = "pass\tword-123" }},
		{"password non-ASCII", func(p *CreateParams) { p.Password = "パスワード12345678" }},
		{"empty displayName", func(p *CreateParams) { p.DisplayName = "" }},
		{"displayName with space", func(p *CreateParams) { p.DisplayName = "display name" }},
		{"displayName with control char", func(p *CreateParams) { p.DisplayName = "display\u0007name" }},
		{"displayName length 51", func(p *CreateParams) { p.DisplayName = strings.Repeat("名", 51) }},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := validParams()
			tt.mutate(&p)
			err := validateCreateParams(p)
			require.NotNil(t, err)
			assert.Equal(t, apperr.InvalidParams, err.Kind)
			assert.Equal(t, "Request validation failed", err.Message)
			assert.NotEmpty(t, err.Details)
		})
	}
}

// All fields are evaluated even after one fails, so a request with several
// bad fields reports every violation at once.
func TestValidateCreateParams_AggregatesAcrossFields(t *testing.T) {
	t.Parallel()

	err := validateCreateParams(CreateParams{LoginID: "", Password: "short", DisplayName: ""})
	require.NotNil(t, err)

	joined := strings.Join(err.Details, "\n")
	assert.Contains(t, joined, "loginId")
	assert.Contains(t, joined, "password")
	assert.Contains(t, joined, "displayName")
}

func TestValidateCreateParams_DisplayNameAllowsUnicode(t *testing.T) {
	t.Parallel()

	p := validParams()
	p.DisplayName = "Ünïcødé-名前"
	assert.Nil(t, validateCreateParams(p))
}
