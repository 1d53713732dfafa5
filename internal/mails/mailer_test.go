package mails

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWelcomeTemplate(t *testing.T) {
	content, err := render(TmplUserWelcome, map[string]any{
		"firstName": "John",
		"lastName":  "Doe",
		"userID":    "5f1c",
	})
	require.NoError(t, err)
	assert.Equal(t, "Welcome to Movies Api!", content.Subject)
	assert.Contains(t, content.PlainBody, "Hi John Doe,")
	assert.Contains(t, content.PlainBody, "5f1c")
	assert.Contains(t, content.HTMLBody, "<p>Hi John Doe,</p>")
}

func TestParseUnknownTemplate(t *testing.T) {
	_, err := render("missing.html", nil)
	assert.Error(t, err)
}

func TestSendUnreachableServer(t *testing.T) {
	m := New("127.0.0.1", 1, 100*time.Millisecond, "", "", "Movies Api <no-reply@movies.local>", 2)
	m.RetryDelay = 0
	err := m.Send("a@x.com", TmplUserWelcome, map[string]any{"firstName": "A", "lastName": "B", "userID": "1"})
	assert.Error(t, err)
}
