package restyutil

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/require"
)

type memoryOutput struct {
	mu    sync.Mutex
	files map[string]string
}

func (o *memoryOutput) Write(id string, contents string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.files == nil {
		o.files = map[string]string{}
	}
	o.files[id] = contents
}

func TestCaptureRedacts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "PHPSESSID", Value: "secret-session"})
		w.Write([]byte("<p>hello</p>"))
	}))
	defer server.Close()

	output := &memoryOutput{}
	client := resty.New()
	Capture(client, output, "password")

	_, err := client.R().
		SetCookie(&http.Cookie{Name: "SESSID", Value: "old-session"}).
		SetFormData(map[string]string{
			"userName": "member@example.com",
			"password": "hunter2",
		}).
		Post(server.URL + "/login")
	require.NoError(t, err)

	require.Len(t, output.files, 1)
	message := output.files["001.txt"]
	require.Contains(t, message, "POST "+server.URL+"/login")
	require.Contains(t, message, "userName=member%40example.com")
	require.Contains(t, message, "<p>hello</p>")
	require.Contains(t, message, "PHPSESSID=<redacted>")
	require.Contains(t, message, "SESSID=<redacted>")
	for _, secret := range []string{"hunter2", "secret-session", "old-session"} {
		require.False(t, strings.Contains(message, secret), secret)
	}
}

func TestFilesystemOutput(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "capture")
	err := os.MkdirAll(dir, 0700)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(dir, "stale.txt"), []byte("old"), 0600)
	require.NoError(t, err)

	output, err := NewFilesystemOutput(dir)
	require.NoError(t, err)
	output.Write("001.txt", "contents")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	contents, err := os.ReadFile(filepath.Join(dir, "001.txt"))
	require.NoError(t, err)
	require.Equal(t, "contents", string(contents))
}

func TestRedactCookieHeader(t *testing.T) {
	require.Equal(
		t,
		"AWSALB=<redacted>; PHPSESSID=<redacted>",
		redactCookieHeader("AWSALB=lb-1; PHPSESSID=abc"),
	)
}
