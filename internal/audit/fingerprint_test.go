package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFingerprint_StripsTrailingBoilerplate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "manager line stripped",
			in:   "Welcome to our server!\nManager: <@111>",
			want: "Welcome to our server!",
		},
		{
			name: "partnered-via line stripped",
			in:   "Welcome to our server!\nPartnered via PartnerBot",
			want: "Welcome to our server!",
		},
		{
			name: "both trailing lines stripped",
			in:   "Welcome!\nManager: <@111>\nPartnered via PartnerBot",
			want: "Welcome!",
		},
		{
			name: "windows line endings normalized",
			in:   "Line one\r\nLine two\r\nManager: <@111>",
			want: "Line one\nLine two",
		},
		{
			name: "manager line in the middle survives",
			in:   "Manager: <@111>\nactual announcement text",
			want: "Manager: <@111>\nactual announcement text",
		},
		{
			name: "whitespace trimmed",
			in:   "  body text  \n\n",
			want: "body text",
		},
		{
			name: "boilerplate-only text collapses to empty",
			in:   "Manager: <@111>\nPartnered via SomeBot",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Fingerprint(tt.in))
		})
	}
}

func TestFingerprint_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"",
		"plain text",
		"Welcome!\nManager: <@111>\nPartnered via PartnerBot",
		"Manager: <@1>\nManager: <@2>",
		"text\r\nPartnered via X\r\nManager: <@9>",
		"  \n\t\n  ",
		"discord.gg/abc123\nManager: <@111>",
	}

	for _, in := range inputs {
		once := Fingerprint(in)
		assert.Equal(t, once, Fingerprint(once), "Fingerprint must be idempotent for %q", in)
	}
}

func TestNormalize_KeepsManagerLine(t *testing.T) {
	t.Parallel()

	got := Normalize("Welcome!\r\nManager: <@111>\r\n")
	assert.Equal(t, "Welcome!\nManager: <@111>", got)
}
