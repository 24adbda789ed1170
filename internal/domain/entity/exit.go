package entity

// ExitTiles is the fixed set of exit-layer tile indices that end a level.
var ExitTiles = map[int]struct{}{
	200: {},
	201: {},
	206: {},
	207: {},
}

// IsExitTile reports whether a tile index marks an exit.
func IsExitTile(index int) bool {
	_, ok := ExitTiles[index]
	return ok
}
