package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"weather-backcast/internal/models"
	"weather-backcast/pkg/logger"
)

const (
	OpenMeteoArchiveBaseURL = "https://archive-api.open-meteo.com/v1/archive"
	openMeteoArchiveName    = "open-meteo-archive"
)

var hourlyVariables = []string{
	"temperature_2m",
	"relativehumidity_2m",
	"weathercode",
	"wind_speed_10m",
}

// ArchiveRepository fetches hourly historical observations for a date range.
type ArchiveRepository interface {
	Name() string
	FetchHourly(ctx context.Context, lat, lon float64, startDate, endDate string) (models.HourlyArchive, error)
}

// TransportError is a non-success response from the archive provider, or
// a request refused locally because the provider's circuit breaker is open.
type TransportError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("archive responded %d: %s", e.StatusCode, e.Body)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

type OpenMeteoArchiveOptions struct {
	BaseURL string
	Retry   RetryPolicy
	Breaker BreakerSettings
}

type OpenMeteoArchiveRepository struct {
	baseURL    string
	httpClient HTTPClient
	retry      RetryPolicy
	circuit    *gobreaker.CircuitBreaker
	l          *logger.Logger
}

func NewOpenMeteoArchiveRepository(l *logger.Logger, httpClient HTTPClient, opts OpenMeteoArchiveOptions) *OpenMeteoArchiveRepository {
	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = OpenMeteoArchiveBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &OpenMeteoArchiveRepository{
		baseURL:    baseURL,
		httpClient: httpClient,
		retry:      opts.Retry,
		circuit:    newCircuitBreaker(openMeteoArchiveName, opts.Breaker),
		l:          l,
	}
}

func (o *OpenMeteoArchiveRepository) Name() string {
	return openMeteoArchiveName
}

func (o *OpenMeteoArchiveRepository) requestURL(lat, lon float64, startDate, endDate string) (string, error) {
	u, err := url.Parse(o.baseURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse base URL: %w", err)
	}

	q := u.Query()
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("start_date", startDate)
	q.Set("end_date", endDate)
	q.Set("hourly", strings.Join(hourlyVariables, ","))
	q.Set("wind_speed_unit", "ms")
	q.Set("timezone", "auto")
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// FetchHourly requests the hourly series between startDate and endDate
// inclusive. A non-2xx response is returned as *TransportError.
func (o *OpenMeteoArchiveRepository) FetchHourly(
	ctx context.Context,
	lat float64,
	lon float64,
	startDate string,
	endDate string,
) (models.HourlyArchive, error) {
	var archive models.HourlyArchive

	rawURL, err := o.requestURL(lat, lon, startDate, endDate)
	if err != nil {
		return archive, err
	}

	o.l.Info("making archive API request", map[string]any{
		"repository": o.Name(),
		"lat":        lat,
		"lon":        lon,
		"start":      startDate,
		"end":        endDate,
	})

	resp, err := doWithResilience(ctx, o.httpClient, o.circuit, o.retry, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	})
	if err != nil {
		return archive, err
	}
	defer resp.Body.Close()

	o.l.Info("received archive API response", map[string]any{
		"repository": o.Name(),
		"status":     resp.StatusCode,
		"statusText": resp.Status,
	})

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return archive, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return archive, &TransportError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var response struct {
		Hourly *models.HourlyArchive `json:"hourly"`
	}
	if err = json.Unmarshal(body, &response); err != nil {
		return archive, fmt.Errorf("failed to parse JSON response: %w", err)
	}

	if response.Hourly == nil {
		o.l.Warning("archive response has no hourly block", map[string]any{
			"repository": o.Name(),
		})
		return archive, nil
	}

	o.l.Info("parsed archive API response", map[string]any{
		"repository": o.Name(),
		"hours":      len(response.Hourly.Time),
	})

	return *response.Hourly, nil
}
