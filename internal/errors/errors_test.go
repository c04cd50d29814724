package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestExcerpt(t *testing.T) {
	t.Log("short body is kept as is")
	{
		require.Equal(t, `{"error":"not found"}`, Excerpt([]byte(`{"error":"not found"}`)))
	}

	t.Log("long body is truncated")
	{
		body := strings.Repeat("a", 2*MaxBodyExcerpt)
		excerpt := Excerpt([]byte(body))
		require.Equal(t, strings.Repeat("a", MaxBodyExcerpt)+"...", excerpt)
	}

	t.Log("multibyte rune on the border is not split")
	{
		body := strings.Repeat("a", MaxBodyExcerpt-1) + "ж" + "tail"
		excerpt := Excerpt([]byte(body))
		require.True(t, utf8.ValidString(excerpt), "excerpt must be valid utf8")
		require.Equal(t, strings.Repeat("a", MaxBodyExcerpt-1)+"...", excerpt)
	}
}

func TestRemoteRequestError(t *testing.T) {
	err := fmt.Errorf("cleanup - %w", NewRemoteRequestError("delete", "contact", "c-1", 404, []byte(`{"error":{"code":"0x80040217"}}`)))

	var remoteErr *RemoteRequestError
	require.True(t, errors.As(err, &remoteErr), "error must be RemoteRequestError")
	require.Equal(t, 404, remoteErr.StatusCode)
	require.Equal(t, "c-1", remoteErr.ID)
	require.Contains(t, remoteErr.Error(), "failed to delete contact c-1, status code 404")

	raw, err := json.Marshal(remoteErr)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"type":"remote",
		"operation":"delete",
		"kind":"contact",
		"id":"c-1",
		"statusCode":404,
		"bodyExcerpt":"{\"error\":{\"code\":\"0x80040217\"}}"
	}`, string(raw))
}

func TestWrappingErrors(t *testing.T) {
	cause := errors.New("connection refused")

	t.Log("transport error unwraps to cause")
	{
		err := NewTransportError("create", "account", cause)
		require.ErrorIs(t, err, cause)
		require.Contains(t, err.Error(), "create account: transport failure")
	}

	t.Log("codec error unwraps to cause")
	{
		err := NewCodecError("incident", cause)
		require.ErrorIs(t, err, cause)
		require.Equal(t, "codec failure for incident - connection refused", err.Error())
		require.Equal(t, "codec failure - connection refused", NewCodecError("", cause).Error())
	}

	t.Log("shape and envelope errors are serializable")
	{
		raw, err := json.Marshal(NewUnexpectedResponseShapeError("create", "account", "Location header is absent"))
		require.NoError(t, err)
		require.Contains(t, string(raw), `"type":"shape"`)

		raw, err = json.Marshal(NewMalformedEnvelopeError("contact", `key "value" is absent`))
		require.NoError(t, err)
		require.Contains(t, string(raw), `"type":"envelope"`)
	}
}
