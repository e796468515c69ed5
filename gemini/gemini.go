// Package gemini implements [locallink.Completer] for the Google Gemini API.
//
// It wraps the google.golang.org/genai SDK. Each completion is a single
// GenerateContent call with the catalog prompt as system instruction.
package gemini

const defaultModel = "gemini-2.5-flash"
