package tickersource

// fallbackTickers is the embedded NIFTY 50 constituent list, already suffixed
// for the exchange. Used whenever the live constituents page cannot be
// fetched or parsed. Index composition drifts over time; refresh this list
// when constituents change.
var fallbackTickers = []string{
	"ADANIENT.NS",
	"ADANIPORTS.NS",
	"APOLLOHOSP.NS",
	"ASIANPAINT.NS",
	"AXISBANK.NS",
	"BAJAJ-AUTO.NS",
	"BAJFINANCE.NS",
	"BAJAJFINSV.NS",
	"BPCL.NS",
	"BHARTIARTL.NS",
	"BRITANNIA.NS",
	"CIPLA.NS",
	"COALINDIA.NS",
	"DIVISLAB.NS",
	"DRREDDY.NS",
	"EICHERMOT.NS",
	"GRASIM.NS",
	"HCLTECH.NS",
	"HDFCBANK.NS",
	"HDFCLIFE.NS",
	"HEROMOTOCO.NS",
	"HINDALCO.NS",
	"HINDUNILVR.NS",
	"ICICIBANK.NS",
	"ITC.NS",
	"INDUSINDBK.NS",
	"INFY.NS",
	"JSWSTEEL.NS",
	"KOTAKBANK.NS",
	"LTIM.NS",
	"LT.NS",
	"M&M.NS",
	"MARUTI.NS",
	"NESTLEIND.NS",
	"NTPC.NS",
	"ONGC.NS",
	"POWERGRID.NS",
	"RELIANCE.NS",
	"SBIN.NS",
	"SBILIFE.NS",
	"SUNPHARMA.NS",
	"TCS.NS",
	"TATACONSUM.NS",
	"TATAMOTORS.NS",
	"TATASTEEL.NS",
	"TECHM.NS",
	"TITAN.NS",
	"ULTRACEMCO.NS",
	"UPL.NS",
	"WIPRO.NS",
}

// FallbackTickers returns a copy of the embedded constituent list so callers
// cannot mutate the package-level slice.
func FallbackTickers() []string {
	out := make([]string, len(fallbackTickers))
	copy(out, fallbackTickers)
	return out
}
