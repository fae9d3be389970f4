// Package file provides file-based implementations of driven port interfaces.
// These adapters persist data to the local filesystem.
//
// Adapters:
//   - ConfigStore: TOML configuration with BONGLORE_* environment overrides
//   - PromptStore: editable prompt templates with hot reload
package file
