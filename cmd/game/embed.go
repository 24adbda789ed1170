package main

import "embed"

// configFS holds the default game.yaml and maps.
//
//go:embed configs
var configFS embed.FS
