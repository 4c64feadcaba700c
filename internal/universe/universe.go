// Package universe holds the static sector watchlist and its reverse lookup.
package universe

// DefaultSector labels tickers that appear in no sector list.
const DefaultSector = "General"

// SectorList is one named group of the watchlist. Lists are ordered: when a
// ticker appears in several lists, the first-declared list owns it. Duplicate
// membership is likely a watchlist mistake, but the tie-break is kept
// deterministic rather than silently dropping entries.
type SectorList struct {
	Name    string   `yaml:"name"`
	Tickers []string `yaml:"tickers"`
}

// Watchlist is the immutable scan universe, built once at startup.
type Watchlist struct {
	tickers []string          // declaration order, duplicates removed
	sectors map[string]string // ticker -> first-declared sector
}

// New builds a watchlist from ordered sector lists. The first occurrence of
// a ticker wins both its universe slot and its sector label.
func New(lists []SectorList) *Watchlist {
	w := &Watchlist{sectors: make(map[string]string)}
	for _, list := range lists {
		for _, t := range list.Tickers {
			if _, seen := w.sectors[t]; seen {
				continue
			}
			w.sectors[t] = list.Name
			w.tickers = append(w.tickers, t)
		}
	}
	return w
}

// Tickers returns the scan universe in declaration order.
func (w *Watchlist) Tickers() []string { return w.tickers }

// Size returns the number of distinct tickers.
func (w *Watchlist) Size() int { return len(w.tickers) }

// SectorOf resolves a ticker's sector via the prebuilt reverse lookup.
func (w *Watchlist) SectorOf(ticker string) string {
	if s, ok := w.sectors[ticker]; ok {
		return s
	}
	return DefaultSector
}

// DefaultLists is the built-in global watchlist, used when the config file
// doesn't supply one.
func DefaultLists() []SectorList {
	return []SectorList{
		{Name: "Quantum & Future Tech", Tickers: []string{"IONQ", "RGTI", "QBTS", "QTUM", "WOLF", "CRS", "IREN", "CRSP", "U"}},
		{Name: "Space & Mobility", Tickers: []string{"RKLB", "JOBY", "RIVN", "INVZ", "MBLY", "UBER", "TSLA"}},
		{Name: "AI & Chips", Tickers: []string{"NVDA", "AMD", "TSM", "AVGO", "ARM", "MU", "INTC", "QCOM", "SMCI", "ANET", "ORCL"}},
		{Name: "Commodities", Tickers: []string{"FCX", "COPX", "SCCO", "AA", "CENX", "NHYDY", "CLF", "ALB", "MP", "GLW", "X"}},
		{Name: "Energy & Infrastructure", Tickers: []string{"KMI", "TRGP", "CCJ", "URA", "VLO", "CVX", "XOM", "ENPH", "VRT", "ETN"}},
		{Name: "BioTech & Pharma", Tickers: []string{"NVO", "LLY", "VRTX", "ZBIO", "AMGN", "PFE", "TEVA"}},
		{Name: "Fintech & Software", Tickers: []string{"SOFI", "PYPL", "FISV", "TTD", "NFLX", "COIN", "HOOD", "SQ", "MSFT", "GOOGL", "AMZN", "META"}},
		{Name: "Defense & Cyber", Tickers: []string{"PLTR", "LMT", "RTX", "KTOS", "CRWD", "PANW", "CHTR", "VOD"}},
		{Name: "Real Estate & REITs", Tickers: []string{"AMT", "O", "PLD"}},
	}
}
