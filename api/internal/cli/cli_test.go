package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"span-checker/api/internal/checker"
)

const payload = `{"corrected_text":"El año pasado celebré mi cumpleaños.","explanations_md":"- **celebré**: preterite"}`

func fakeOpenAI(t *testing.T, status int, content string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(content))
			return
		}
		b, _ := json.Marshal(map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"role": "assistant", "content": content}}},
		})
		_, _ = w.Write(b)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// setupEnv points the gpt engine at baseURL and the journal at a fresh sqlite file.
func setupEnv(t *testing.T, baseURL string, journal bool) {
	t.Helper()
	t.Setenv("LLM_PROVIDER", "gpt")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_BASE_URL", baseURL)
	t.Setenv("MODEL", "gpt-4o-mini")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	if journal {
		t.Setenv("DATABASE_URL", filepath.Join(t.TempDir(), "journal.db"))
	} else {
		t.Setenv("DATABASE_URL", "")
	}
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append(args, "--env-file", filepath.Join(t.TempDir(), "missing.env")))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCheck_PrintsRawJSON(t *testing.T) {
	srv := fakeOpenAI(t, http.StatusOK, payload)
	setupEnv(t, srv.URL, false)

	out, err := run(t, "", "check", "El año pasado yo celebro mi cumpleaños.")
	require.NoError(t, err)
	assert.JSONEq(t, payload, out)
}

func TestCheck_Pretty(t *testing.T) {
	srv := fakeOpenAI(t, http.StatusOK, payload)
	setupEnv(t, srv.URL, false)

	out, err := run(t, "", "check", "--pretty", "Hola")
	require.NoError(t, err)
	assert.Contains(t, out, "Corrected text:\n\nEl año pasado celebré mi cumpleaños.")
	assert.Contains(t, out, "Explanations:\n\n- **celebré**: preterite")
}

func TestCheck_FromStdinAndFile(t *testing.T) {
	srv := fakeOpenAI(t, http.StatusOK, payload)
	setupEnv(t, srv.URL, false)

	out, err := run(t, "Mi cumpleaños fue ayer.\n", "check")
	require.NoError(t, err)
	assert.JSONEq(t, payload, out)

	path := filepath.Join(t.TempDir(), "essay.txt")
	require.NoError(t, os.WriteFile(path, []byte("Mi cumpleaños fue ayer."), 0o644))
	out, err = run(t, "", "check", "--file", path)
	require.NoError(t, err)
	assert.JSONEq(t, payload, out)
}

func TestCheck_EmptyText(t *testing.T) {
	srv := fakeOpenAI(t, http.StatusOK, payload)
	setupEnv(t, srv.URL, false)

	_, err := run(t, "   \n", "check")
	assert.ErrorIs(t, err, checker.ErrEmptyText)
}

func TestCheck_UpstreamError(t *testing.T) {
	srv := fakeOpenAI(t, http.StatusUnauthorized, `{"error":{"message":"Incorrect API key"}}`)
	setupEnv(t, srv.URL, false)

	_, err := run(t, "", "check", "Hola")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "Incorrect API key")
}

func TestCheck_UnknownProvider(t *testing.T) {
	setupEnv(t, "http://127.0.0.1:1", false)
	t.Setenv("LLM_PROVIDER", "claude")

	_, err := run(t, "", "check", "Hola")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown llm provider")
}

func TestHistoryAndPurge(t *testing.T) {
	srv := fakeOpenAI(t, http.StatusOK, payload)
	setupEnv(t, srv.URL, true)

	out, err := run(t, "", "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No submissions")

	_, err = run(t, "", "check", "El año pasado yo celebro mi cumpleaños con mi familia.")
	require.NoError(t, err)

	out, err = run(t, "", "history", "--limit", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "CREATED")
	assert.Contains(t, out, "cli")
	assert.Contains(t, out, "gpt-4o-mini")
	assert.Contains(t, out, "El año pasado yo celebro mi cumpleaño...")

	out, err = run(t, "", "purge", "--older-than", "720h")
	require.NoError(t, err)
	assert.Contains(t, out, "Deleted 0 submission(s)")

	_, err = run(t, "", "purge", "--older-than", "0s")
	assert.Error(t, err)
}

func TestHistory_RequiresJournal(t *testing.T) {
	setupEnv(t, "http://127.0.0.1:1", false)

	_, err := run(t, "", "history")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestReadInput_ArgsAndFile(t *testing.T) {
	_, err := run(t, "", "check", "--file", "x.txt", "Hola")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not both")
}

func TestSnippet(t *testing.T) {
	assert.Equal(t, "corto", snippet("corto", 40))
	assert.Equal(t, "a b", snippet("a\nb", 40))
	assert.Equal(t, "abcdefg...", snippet("abcdefghijklmnop", 10))
	assert.Equal(t, "ab", snippet("abcdef", 2))
	assert.Equal(t, "abc", snippet("abcdef", 3))
	assert.Equal(t, "", snippet("abcdef", 0))
	assert.Equal(t, "", snippet("abcdef", -1))
}
