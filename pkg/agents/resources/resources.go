// Package resources embeds the default agent catalog: the manifest and one system prompt per agent.
package resources

import "embed"

//go:embed agents.yaml prompts/*.txt
var FS embed.FS
