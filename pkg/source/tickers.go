package source

// SP100Tickers is the default ticker set: the S&P 100, which is what the
// API Ninjas free tier covers. Update as index membership changes.
var SP100Tickers = []string{
	"AAPL", "MSFT", "AMZN", "NVDA", "GOOGL", "META", "TSLA", "BRK.B", "UNH", "XOM",
	"JPM", "JNJ", "V", "PG", "MA", "HD", "CVX", "MRK", "ABBV", "LLY",
	"PEP", "KO", "COST", "AVGO", "WMT", "MCD", "CSCO", "TMO", "ABT", "ACN",
	"DHR", "NEE", "VZ", "ADBE", "NKE", "PM", "TXN", "WFC", "RTX", "COP",
	"BMY", "UPS", "MS", "HON", "QCOM", "UNP", "LOW", "ORCL", "IBM", "GE",
	"CAT", "BA", "AMGN", "SBUX", "DE", "PLD", "INTC", "INTU", "GS", "BLK",
	"AMD", "GILD", "AXP", "MDLZ", "ADI", "ISRG", "SYK", "BKNG", "VRTX", "REGN",
	"CVS", "SCHW", "TJX", "PGR", "LRCX", "MMC", "CI", "C", "CB", "ZTS",
	"SO", "DUK", "MO", "TMUS", "EOG", "BSX", "BDX", "CME", "CL", "SLB",
	"NOC", "ITW", "FDX", "USB", "EMR", "PNC", "WM", "AON", "TGT", "FCX",
}
