package locallink

import "fmt"

// Validate checks that a record can be stored.
func (m Message) Validate() error {
	if !m.Sender.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownSender, m.Sender)
	}
	return nil
}

// Validate checks every record and reports the index of the first bad one.
func (t Transcript) Validate() error {
	for i, m := range t {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("message %d: %w", i, err)
		}
	}
	return nil
}
