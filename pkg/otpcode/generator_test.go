package otpcode_test

import (
	"regexp"
	"testing"
	"time"

	"jobkit-backend/pkg/otpcode"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sixDigits = regexp.MustCompile(`^[0-9]{6}$`)

func TestGenerate(t *testing.T) {
	g := otpcode.NewGenerator("")
	now := time.Now()

	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		code, err := g.Generate("e@x.com", now)
		require.NoError(t, err)
		assert.Regexp(t, sixDigits, code)
		seen[code] = struct{}{}
	}

	// Fresh secrets per call: fifty codes at the same instant should not all coincide.
	assert.Greater(t, len(seen), 1)
}
