package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegistration(t *testing.T) {
	tests := []struct {
		name   string
		person string
		email  string
		pass   string
		params []string
	}{
		{"valid", "Ada", "ada@example.com", "secret1", nil},
		{"missing name", "", "ada@example.com", "secret1", []string{"name"}},
		{"bad email", "Ada", "not-an-email", "secret1", []string{"email"}},
		{"short password", "Ada", "ada@example.com", "12345", []string{"password"}},
		{"everything wrong", "", "nope", "123", []string{"name", "email", "password"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Registration(tt.person, tt.email, tt.pass)
			var params []string
			for _, e := range errs {
				params = append(params, e.Param)
			}
			assert.Equal(t, tt.params, params)
		})
	}
}

func TestLogin(t *testing.T) {
	assert.Empty(t, Login("ada@example.com", "pw"))

	errs := Login("bad", "")
	assert.Len(t, errs, 2)
	assert.Equal(t, "Please include a valid email", errs[0].Msg)
	assert.Equal(t, "Password is required", errs[1].Msg)
}

func TestSplitSkills(t *testing.T) {
	assert.Equal(t, []string{"HTML", "CSS", "JavaScript"}, SplitSkills("HTML, CSS ,JavaScript"))
	assert.Equal(t, []string{"Go"}, SplitSkills("  Go  "))
	assert.Empty(t, SplitSkills(" , ,"))
}
