package model

// RenderKind discriminates the user-facing representations a turn can produce.
type RenderKind int

const (
	RenderText RenderKind = iota
	RenderLoading
	RenderError
	RenderPriceCard
	RenderStatsCard
	RenderProductCard
	RenderBookStockCard
)

// PriceCard is the render payload for a spot price lookup.
type PriceCard struct {
	Symbol string
	Price  float64
	Delta  float64
}

// StatsCard is the render payload for a market statistics lookup. Fields map
// near-verbatim onto the statistics object returned by the market-data API.
type StatsCard struct {
	Name              string
	Rank              int
	Price             float64
	MarketCap         float64
	Dominance         float64
	Volume            float64
	VolumeChange24h   float64
	TotalSupply       float64
	CirculatingSupply float64
}

// ProductCard is the render payload for a product details lookup.
type ProductCard struct {
	Name        string
	Description string
	Price       string
	ReleaseDate string
	Features    []string
}

// BookStockCard is the render payload for a book stock lookup.
type BookStockCard struct {
	ISBN  string
	Stock string
}

// Render is the user-facing representation of a turn's current or final
// result. Exactly one payload field is set for card kinds; Text carries the
// content for text, loading and error kinds.
type Render struct {
	Kind    RenderKind
	Text    string
	Price   *PriceCard
	Stats   *StatsCard
	Product *ProductCard
	Book    *BookStockCard
}

// EmitFunc delivers interim renders to the caller while a turn is in flight.
// Renders arrive in emission order; the last emission is authoritative.
type EmitFunc func(Render)

func TextRender(text string) Render {
	return Render{Kind: RenderText, Text: text}
}

func LoadingRender(text string) Render {
	return Render{Kind: RenderLoading, Text: text}
}

func ErrorRender(text string) Render {
	return Render{Kind: RenderError, Text: text}
}
