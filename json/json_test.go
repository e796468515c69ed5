package json_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/locallink"
	lljson "github.com/fwojciec/locallink/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalTranscript_RoundTrip(t *testing.T) {
	t.Parallel()
	transcript := locallink.Transcript{
		{Sender: locallink.SenderUser, Text: "Tell me about tutoring", Timestamp: "09:30"},
		{Sender: locallink.SenderBot, Text: "Tutoring runs **Mon–Thu** in the library.", Timestamp: "09:30"},
		{Sender: locallink.SenderUser, Text: "  spaced  ", Timestamp: "09:31"},
		{Sender: locallink.SenderBot, Text: locallink.FallbackReply, Timestamp: "09:31"},
	}

	data, err := lljson.MarshalTranscript(transcript)
	require.NoError(t, err)

	got, err := lljson.UnmarshalTranscript(data)
	require.NoError(t, err)
	assert.Equal(t, transcript, got)
}

func TestMarshalTranscript_Layout(t *testing.T) {
	t.Parallel()
	data, err := lljson.MarshalTranscript(locallink.Transcript{
		{Sender: locallink.SenderUser, Text: "hi", Timestamp: "10:00"},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `[{"sender":"user","text":"hi","timestamp":"10:00"}]`, string(data))
}

func TestMarshalTranscript_EmptyIsArray(t *testing.T) {
	t.Parallel()
	data, err := lljson.MarshalTranscript(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestMarshalTranscript_UnknownSender(t *testing.T) {
	t.Parallel()
	_, err := lljson.MarshalTranscript(locallink.Transcript{{Sender: "system", Text: "x"}})
	require.ErrorIs(t, err, locallink.ErrUnknownSender)
	assert.Contains(t, err.Error(), "message 0")
}

func TestUnmarshalTranscript_Errors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		data string
	}{
		{"invalid json", `{not json`},
		{"object instead of array", `{"sender":"user"}`},
		{"null", `null`},
		{"truncated", `[{"sender":"user","text":"hi"`},
		{"wrong field type", `[{"sender":"user","text":5}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := lljson.UnmarshalTranscript([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestUnmarshalTranscript_UnknownSender(t *testing.T) {
	t.Parallel()
	_, err := lljson.UnmarshalTranscript([]byte(`[{"sender":"user","text":"a","timestamp":"1"},{"sender":"robot","text":"b","timestamp":"2"}]`))
	require.ErrorIs(t, err, locallink.ErrUnknownSender)
	assert.Contains(t, err.Error(), "message 1")
}

func TestUnmarshalTranscript_EmptyArray(t *testing.T) {
	t.Parallel()
	got, err := lljson.UnmarshalTranscript([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUnmarshalTranscript_IgnoresExtraFields(t *testing.T) {
	t.Parallel()
	got, err := lljson.UnmarshalTranscript([]byte(`[{"sender":"bot","text":"hey","timestamp":"08:00","id":7}]`))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, locallink.Message{Sender: locallink.SenderBot, Text: "hey", Timestamp: "08:00"}, got[0])
}

func TestMarshalTranscript_EscapesText(t *testing.T) {
	t.Parallel()
	text := "line one\nline \"two\" <b>"
	data, err := lljson.MarshalTranscript(locallink.Transcript{{Sender: locallink.SenderUser, Text: text, Timestamp: "10:00"}})
	require.NoError(t, err)

	var raw []map[string]string
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, text, raw[0]["text"])
}
