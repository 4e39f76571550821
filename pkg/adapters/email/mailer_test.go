package email

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inevo/formflow/pkg/ports"
)

func TestConsoleMailerFormat(t *testing.T) {
	var out bytes.Buffer
	m := NewConsoleMailer(&out)

	err := m.Send(context.Background(), ports.Email{
		To:      "user_a@example.com",
		Subject: "Your Application Status",
		Body:    "You have completed 42.0% of the application.",
	})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "[Simulated Email Sent]")
	assert.Contains(t, text, "To: user_a@example.com")
	assert.Contains(t, text, "Subject: Your Application Status")
	assert.Contains(t, text, "42.0%")
}

func TestRecordingMailerCaptures(t *testing.T) {
	m := NewRecordingMailer()
	ctx := context.Background()

	require.NoError(t, m.Send(ctx, ports.Email{Subject: "first"}))
	require.NoError(t, m.Send(ctx, ports.Email{Subject: "second"}))

	sent := m.Sent()
	require.Len(t, sent, 2)
	assert.Equal(t, "first", sent[0].Subject)

	// Sent returns a snapshot, not the live slice.
	sent[0].Subject = "mutated"
	assert.Equal(t, "first", m.Sent()[0].Subject)
}
