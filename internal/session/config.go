package session

// Config holds the parameters a session is built from.
type Config struct {
	Width, Height int
	// InitialPrices maps every asset to its starting price in minor units.
	InitialPrices map[string]int64
	InitialCash   int64
	// AssetNames holds display names by symbol. Symbols without one are
	// shown by ticker alone.
	AssetNames map[string]string
	// Seed for random number generation. Used for reproducible mazes, price
	// paths and objectives. A seed of 0 means a random seed will be generated.
	Seed int64
}
