// Package ratesource implements the external daily exchange-rate feed
// against the TCMB (Turkish central bank) XML endpoint.
package ratesource

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ntsmobil/freight_pricing_app/internal/apperrors"
	portsrepo "github.com/ntsmobil/freight_pricing_app/internal/core/ports/repositories"
)

const maxResponseBytes = 1 << 20

// TCMBClient fetches daily selling rates from the TCMB archive. Rates are
// published per calendar date at /kurlar/YYYYMM/DDMMYYYY.xml; dates without
// a publication (weekends, holidays) return 404, which surfaces as
// apperrors.ErrNoRateData like every other transport failure.
type TCMBClient struct {
	baseURL      string
	trackedCodes []string
	httpClient   *http.Client
}

var _ portsrepo.RateSource = (*TCMBClient)(nil)

// NewTCMBClient creates a TCMB feed client. trackedCodes limits the parsed
// currencies; an empty list keeps every currency the document carries.
func NewTCMBClient(baseURL string, timeout time.Duration, trackedCodes []string) *TCMBClient {
	return &TCMBClient{
		baseURL:      baseURL,
		trackedCodes: trackedCodes,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

type tcmbDocument struct {
	XMLName    xml.Name       `xml:"Tarih_Date"`
	Currencies []tcmbCurrency `xml:"Currency"`
}

type tcmbCurrency struct {
	Code         string `xml:"CurrencyCode,attr"`
	Unit         string `xml:"Unit"`
	ForexSelling string `xml:"ForexSelling"`
}

// Fetch returns the selling rates published for the given date, as base
// currency units per one unit of foreign currency.
func (c *TCMBClient) Fetch(ctx context.Context, date time.Time) (map[string]decimal.Decimal, error) {
	url := fmt.Sprintf("%s/kurlar/%s/%s.xml", c.baseURL, date.Format("200601"), date.Format("02012006"))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", apperrors.ErrNoRateData, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrNoRateData, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: feed returned status %d for %s", apperrors.ErrNoRateData, resp.StatusCode, date.Format(time.DateOnly))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", apperrors.ErrNoRateData, err)
	}

	var doc tcmbDocument
	if err := xml.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("%w: malformed feed document: %v", apperrors.ErrNoRateData, err)
	}

	rates := make(map[string]decimal.Decimal)
	for _, currency := range doc.Currencies {
		if !c.tracked(currency.Code) {
			continue
		}
		rate, err := parseRate(currency)
		if err != nil {
			continue
		}
		rates[currency.Code] = rate
	}
	if len(rates) == 0 {
		return nil, fmt.Errorf("%w: feed document for %s carried no usable rates", apperrors.ErrNoRateData, date.Format(time.DateOnly))
	}
	return rates, nil
}

func (c *TCMBClient) tracked(code string) bool {
	if len(c.trackedCodes) == 0 {
		return true
	}
	for _, tracked := range c.trackedCodes {
		if tracked == code {
			return true
		}
	}
	return false
}

// parseRate normalizes a feed entry to a per-unit selling rate. Some
// currencies are quoted per 100 units; the Unit field covers that.
func parseRate(currency tcmbCurrency) (decimal.Decimal, error) {
	if currency.ForexSelling == "" {
		return decimal.Decimal{}, fmt.Errorf("empty selling rate for %s", currency.Code)
	}
	rate, err := decimal.NewFromString(currency.ForexSelling)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if currency.Unit != "" && currency.Unit != "1" {
		unit, err := decimal.NewFromString(currency.Unit)
		if err != nil || unit.IsZero() {
			return decimal.Decimal{}, fmt.Errorf("bad unit %q for %s", currency.Unit, currency.Code)
		}
		rate = rate.Div(unit)
	}
	return rate, nil
}
