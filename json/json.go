// Package json encodes transcripts in the layout persisted to a durable slot:
// a JSON array of {"sender","text","timestamp"} objects.
package json

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/locallink"
)

// messageDTO is the JSON representation of a Message.
type messageDTO struct {
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// MarshalTranscript serializes a Transcript as a JSON array. A nil
// transcript encodes as an empty array, never null.
func MarshalTranscript(t locallink.Transcript) ([]byte, error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}
	dtos := make([]messageDTO, len(t))
	for i, msg := range t {
		dtos[i] = messageDTO{
			Sender:    string(msg.Sender),
			Text:      msg.Text,
			Timestamp: msg.Timestamp,
		}
	}
	return json.Marshal(dtos)
}

// UnmarshalTranscript deserializes a Transcript from a JSON array.
func UnmarshalTranscript(data []byte) (locallink.Transcript, error) {
	var dtos []messageDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("unmarshal transcript: %w", err)
	}
	if dtos == nil {
		// Literal "null" decodes without error.
		return nil, fmt.Errorf("unmarshal transcript: not an array")
	}
	t := make(locallink.Transcript, len(dtos))
	for i, dto := range dtos {
		t[i] = locallink.Message{
			Sender:    locallink.Sender(dto.Sender),
			Text:      dto.Text,
			Timestamp: dto.Timestamp,
		}
	}
	if err := t.Validate(); err != nil {
		return nil, fmt.Errorf("unmarshal transcript: %w", err)
	}
	return t, nil
}
