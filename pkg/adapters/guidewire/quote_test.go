package guidewire

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestQuote(t *testing.T) {
	svc := New()

	quote, err := svc.RequestQuote(context.Background(), nil)
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^qw_[0-9a-f]{8}$`), quote.ID)
	assert.Equal(t, DefaultQuoteAmount, quote.Amount)

	// IDs are unique per submission.
	second, err := svc.RequestQuote(context.Background(), nil)
	require.NoError(t, err)
	assert.NotEqual(t, quote.ID, second.ID)
}

func TestWithAmount(t *testing.T) {
	svc := New().WithAmount(2750.50)

	quote, err := svc.RequestQuote(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2750.50, quote.Amount)
}
