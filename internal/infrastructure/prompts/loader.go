package prompts

import (
	_ "embed"
)

//go:embed crew.yaml
var DefaultCrewDefinition []byte
