package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)

	assert.True(t, Verify("secret123", hash))
	assert.False(t, Verify("wrong", hash))
	assert.False(t, Verify("secret123", "not-a-hash"))
}

func TestHashToken(t *testing.T) {
	a := HashToken("token-one")
	b := HashToken("token-two")

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, HashToken("token-one"))
}

func TestValidatePassword(t *testing.T) {
	assert.False(t, ValidatePassword(""))
	assert.False(t, ValidatePassword("12345"))
	assert.True(t, ValidatePassword("123456"))
}

func TestValidateEmail(t *testing.T) {
	valid := []string{"jane@example.com", "a.b@chama.co.ke"}
	for _, e := range valid {
		assert.True(t, ValidateEmail(e), e)
	}

	invalid := []string{"", "plain", "a@b", "a b@c.com", "@example.com"}
	for _, e := range invalid {
		assert.False(t, ValidateEmail(e), e)
	}
}

func TestValidatePhone(t *testing.T) {
	valid := []string{"0712345678", "0112345678", "0798765432"}
	for _, p := range valid {
		assert.True(t, ValidatePhone(p), p)
	}

	invalid := []string{"", "712345678", "071234567", "07123456789", "0812345678", "254712345678"}
	for _, p := range invalid {
		assert.False(t, ValidatePhone(p), p)
	}
}
