package domain

import "time"

// ReflectionRequest is a single journal entry submitted for reflection.
type ReflectionRequest struct {
	Content string

	// Preferences is opaque client data passed through to the prompt
	// layer. The core never interprets it: only Content participates in
	// caching and rate limiting.
	Preferences map[string]any
}

// ModelParts is the raw three-part answer a model produces.
type ModelParts struct {
	Summary    string
	Pattern    string
	Suggestion string
}

// Metadata describes how a reflection was produced.
type Metadata struct {
	Model            string
	ProcessedAt      time.Time
	ProcessingTimeMs int64
}

// Reflection is the complete answer returned to the client.
type Reflection struct {
	Summary    string
	Pattern    string
	Suggestion string
	Metadata   Metadata
}
