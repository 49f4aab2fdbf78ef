package configs

import _ "embed"

// ApplicationYAML holds the default properties, used when no properties file is found on disk
//
//go:embed application.yml
var ApplicationYAML []byte

// MessagesYAML holds the default messages
//
//go:embed messages.yml
var MessagesYAML []byte
