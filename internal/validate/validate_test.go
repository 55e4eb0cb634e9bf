package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequired(t *testing.T) {
	errs := Errors{}
	errs.Required("name", "  ", "Name")
	errs.Required("email", "a@b.co", "Email")

	assert.False(t, errs.Ok())
	assert.Equal(t, "Name is required", errs["name"])
	assert.NotContains(t, errs, "email")
}

func TestLength(t *testing.T) {
	cases := []struct {
		value string
		want  string
	}{
		{"", "Name is required"},
		{"a", "Name must be between 2 and 50 characters"},
		{"ok", ""},
		{"  spaced  ", ""},
	}
	for _, tc := range cases {
		errs := Errors{}
		errs.Length("name", tc.value, "Name", 2, 50)
		if tc.want == "" {
			assert.True(t, errs.Ok(), "value %q", tc.value)
		} else {
			assert.Equal(t, tc.want, errs["name"])
		}
	}

	errs := Errors{}
	long := make([]byte, 51)
	for i := range long {
		long[i] = 'x'
	}
	errs.Length("name", string(long), "Name", 2, 50)
	assert.Equal(t, "Name must be between 2 and 50 characters", errs["name"])
}

func TestMinLength(t *testing.T) {
	errs := Errors{}
	errs.MinLength("password", "12345", "Password", 6)
	assert.Equal(t, "Password must be at least 6 characters", errs["password"])

	errs = Errors{}
	errs.MinLength("password", "123456", "Password", 6)
	assert.True(t, errs.Ok())
}

func TestEmail(t *testing.T) {
	valid := []string{"a@b.co", "user.name+tag@example.org"}
	invalid := []string{"", "plain", "a@b", "a b@c.de", "@missing.local"}

	for _, v := range valid {
		errs := Errors{}
		errs.Email("email", v)
		assert.True(t, errs.Ok(), "expected %q to be valid", v)
	}
	for _, v := range invalid {
		errs := Errors{}
		errs.Email("email", v)
		assert.False(t, errs.Ok(), "expected %q to be invalid", v)
	}
}

func TestPositive(t *testing.T) {
	errs := Errors{}
	errs.Positive("amount", 0, "Amount")
	assert.Equal(t, "Amount must be greater than zero", errs["amount"])

	errs = Errors{}
	errs.Positive("amount", -5, "Amount")
	assert.False(t, errs.Ok())

	errs = Errors{}
	errs.Positive("amount", 0.01, "Amount")
	assert.True(t, errs.Ok())
}

func TestRange(t *testing.T) {
	errs := Errors{}
	errs.Range("month", 13, 1, 12, "Month")
	assert.Equal(t, "Month must be between 1 and 12", errs["month"])

	errs = Errors{}
	errs.Range("month", 12, 1, 12, "Month")
	assert.True(t, errs.Ok())
}

func TestAddKeepsFirstMessage(t *testing.T) {
	errs := Errors{}
	errs.Add("name", "first")
	errs.Add("name", "second")
	assert.Equal(t, "first", errs["name"])
}
