package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "dashed", input: "987-654-3210", expected: "987-654-3210"},
		{name: "parenthesized", input: "(987) 654-3210", expected: "987-654-3210"},
		{name: "dotted", input: "987.654.3210", expected: "987-654-3210"},
		{name: "bare digits", input: "9876543210", expected: "987-654-3210"},
		{name: "too short", input: "123456789", wantErr: true},
		{name: "too long", input: "98765432101", wantErr: true},
		{name: "area code starts with 1", input: "187-654-3210", wantErr: true},
		{name: "exchange starts with 0", input: "987-054-3210", wantErr: true},
		{name: "not a number", input: "invalid-phone", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Phone(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrPhoneFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestPhone_Idempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{"987-654-3210", "(212) 555-0123", "3045550100"}
	for _, input := range inputs {
		once, err := Phone(input)
		require.NoError(t, err)
		twice, err := Phone(once)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}

func TestUsername(t *testing.T) {
	t.Parallel()

	got, err := Username("JaneSmith42")
	require.NoError(t, err)
	assert.Equal(t, "janesmith42", got)

	_, err = Username("jane_smith")
	require.ErrorIs(t, err, ErrUsernameFormat)

	_, err = Username("jane smith")
	require.ErrorIs(t, err, ErrUsernameFormat)
}

func TestISBN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
		wantErr  bool
	}{
		{name: "isbn-13 with hyphens", input: "978-0-306-40615-7", expected: "9780306406157"},
		{name: "isbn-10 with spaces", input: "0 306 40615 2", expected: "0306406152"},
		{name: "already clean", input: "9780306406157", expected: "9780306406157"},
		{name: "wrong length", input: "978-0-306", wantErr: true},
		{name: "letters", input: "97803064061X7", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ISBN(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrISBNFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestTitleCase(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Jane", TitleCase("jane"))
	assert.Equal(t, "Mary Anne", TitleCase("mary anne"))
	assert.Equal(t, "Mary Anne", TitleCase("MARY  ANNE"))
	assert.Equal(t, "", TitleCase(""))
	assert.Equal(t, "   ", TitleCase("   "))
}
