package transport

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestLoggingRoundTripper(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	var out bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&out)

	client := NewClient(time.Second, logger)

	t.Log("request is forwarded and logged without authorization header")
	{
		req, err := http.NewRequest(http.MethodDelete, srv.URL+"/accounts(1)", nil)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer secret-token")

		resp, err := client.Do(req)
		require.NoError(t, err, "no error must be raised")
		require.NoError(t, resp.Body.Close())
		require.Equal(t, http.StatusNoContent, resp.StatusCode)

		require.Contains(t, out.String(), "request completed")
		require.Contains(t, out.String(), "status=204")
		require.NotContains(t, out.String(), "secret-token", "token must never be logged")
	}

	t.Log("failed request is logged and error returned")
	{
		out.Reset()
		srv.Close()

		_, err := client.Get(srv.URL + "/accounts")
		require.Error(t, err, "server is closed, error must be raised")
		require.Contains(t, out.String(), "request failed")
	}
}

func TestNewClientDefaultTimeout(t *testing.T) {
	client := NewClient(0, logrus.New())
	require.Equal(t, DefaultTimeout, client.Timeout)
}
