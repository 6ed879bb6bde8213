package portfolio

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httputil"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// Current prices come from the CoinGecko public API:
//
//	GET /api/v3/simple/price?ids=bitcoin,ethereum&vs_currencies=usd
//	-> {"bitcoin":{"usd":109509},"ethereum":{"usd":3885.46}}
//
// Quotes are a convenience, not a dependency: when the API is unreachable or
// a ticker is unknown, the report is rendered without unrealized PnL and the
// total is flagged as partial.

const coingeckoURL = "https://api.coingecko.com/api/v3/simple/price"

// coingeckoIDs maps ticker symbols to the CoinGecko asset ids the API wants.
var coingeckoIDs = map[string]string{
	"BTC":   "bitcoin",
	"ETH":   "ethereum",
	"SOL":   "solana",
	"ADA":   "cardano",
	"XRP":   "ripple",
	"DOGE":  "dogecoin",
	"DOT":   "polkadot",
	"LTC":   "litecoin",
	"LINK":  "chainlink",
	"AVAX":  "avalanche-2",
	"MATIC": "matic-network",
	"BNB":   "binancecoin",
}

var quoteClient = &http.Client{
	Transport: &diskCache{base: http.DefaultTransport},
	Timeout:   10 * time.Second,
}

// FetchQuotes asks CoinGecko for the current price of each ticker in
// currency and returns a PriceLookup over the result. Tickers with no known
// CoinGecko id are simply absent from the lookup.
func FetchQuotes(tickers []string, currency string) (PriceLookup, error) {
	var ids []string
	byID := make(map[string]string) // id -> ticker
	for _, t := range tickers {
		if id, ok := coingeckoIDs[strings.ToUpper(t)]; ok {
			ids = append(ids, id)
			byID[id] = strings.ToUpper(t)
		}
	}
	if len(ids) == 0 {
		return NoPrices, nil
	}

	vs := strings.ToLower(currency)
	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))
	q.Set("vs_currencies", vs)

	resp, err := quoteClient.Get(coingeckoURL + "?" + q.Encode())
	if err != nil {
		return nil, fmt.Errorf("cannot fetch quotes: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cannot fetch quotes: %s", resp.Status)
	}

	var doc interface{}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("cannot parse quote response: %w", err)
	}

	prices := make(map[string]Money, len(ids))
	for id, ticker := range byID {
		v, err := jsonpath.Get(fmt.Sprintf(`$[%q][%q]`, id, vs), doc)
		if err != nil {
			// Asset missing from the response: leave it unquoted.
			continue
		}
		price, ok := v.(float64)
		if !ok {
			continue
		}
		prices[ticker] = M(price, strings.ToUpper(currency))
	}

	return func(ticker string) (Money, bool) {
		m, ok := prices[strings.ToUpper(ticker)]
		return m, ok
	}, nil
}

// diskCache implements a simple disk cache for HTTP responses
type diskCache struct {
	base http.RoundTripper
}

func (c *diskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	// get from disk
	// diskcache implements a unique key per day, so the local tmp expires every day.
	key := fmt.Sprintf("%s %s %s", time.Now().UTC().Format("2006-01-02"), req.Method, req.URL.String())
	key = fmt.Sprintf("%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	resp, err = c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v/%v %v", resp.Request.Method, resp.Request.URL.Host, resp.Request.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	// otherwise attempt to store it in cache

	if err := c.put(key, resp); err != nil {
		log.Printf("cache write err (ignored): %v", err)
	}
	return resp, nil
}

// get retrieves a cached response from disk
func (c *diskCache) get(key string, req *http.Request) (resp *http.Response, err error) {
	file := filepath.Join(os.TempDir(), key)
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache
func (c *diskCache) put(key string, resp *http.Response) (err error) {
	file := filepath.Join(os.TempDir(), key)

	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}

	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(content); err != nil {
		return err
	}

	// replace the consumed body with a fresh reader over the dumped bytes
	saved, err := http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), resp.Request)
	if err != nil {
		return err
	}
	*resp = *saved
	return nil
}
