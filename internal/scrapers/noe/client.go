// client.go contains the session handling for the booking site: logging in,
// holding the session cookies and re-logging in when the session expires.

package noe

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"time"

	"noebook-backend/internal/components/assert"
	"noebook-backend/internal/components/chrono"
	"noebook-backend/internal/components/restyutil"
	"noebook-backend/internal/components/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
)

var tracer = otel.Tracer("scrapers/noe")
var meter = otel.Meter("scrapers/noe")

const (
	report_client_new              = "client.new"
	report_client_login            = "client.login"
	report_client_post             = "client.post"
	report_client_get_schedule     = "client.get-schedule"
	report_client_get_credits      = "client.get-credits"
	report_client_get_reservations = "client.get-reservations"
	report_client_book             = "client.book"
	report_client_cancel           = "client.cancel"
)

const (
	// the server sets this one
	session_cookie = "PHPSESSID"
	// the site's login script copies PHPSESSID into this cookie, requests without it
	// are treated as signed out
	session_cookie_copy = "SESSID"

	// a login must set at least this many cookies to be considered successful
	min_login_cookies = 2

	// number of times a request is retried after re-logging in on an expired session
	max_session_retries = 1

	default_timeout = 30 * time.Second
)

// session maps cookie names to values.
type session struct {
	cookies map[string]string
}

func (s *session) authenticated() bool {
	return len(s.cookies) > 0
}

func (s *session) clear() {
	s.cookies = map[string]string{}
}

func (s *session) set(name, value string) {
	if s.cookies == nil {
		s.cookies = map[string]string{}
	}
	s.cookies[name] = value
}

// merge applies Set-Cookie headers from a response, the server rotates session
// ids mid flow and deletes cookies with a negative max age. A rotated session
// cookie is copied again since the site expects both to match.
func (s *session) merge(cookies []*http.Cookie, now time.Time) {
	for _, c := range cookies {
		if c.MaxAge < 0 || (!c.Expires.IsZero() && c.Expires.Before(now)) {
			delete(s.cookies, c.Name)
			continue
		}
		s.set(c.Name, c.Value)
		if c.Name == session_cookie {
			s.set(session_cookie_copy, c.Value)
		}
	}
}

func (s *session) httpCookies() []*http.Cookie {
	names := make([]string, 0, len(s.cookies))
	for name := range s.cookies {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]*http.Cookie, len(names))
	for i, name := range names {
		out[i] = &http.Cookie{Name: name, Value: s.cookies[name]}
	}
	return out
}

type ClientOptions struct {
	BaseUrl string
	// LocationPath is the path of the booking location page, every request is
	// posted to it.
	LocationPath string
	LocationId   string
	Username     string
	Password     string

	// defaults to 30 seconds
	Timeout          time.Duration
	CloudflareBypass bool

	// when set, every exchange with the site is written to it with the password masked
	Capture restyutil.Output

	// defaults to chrono.NewStandardImpl
	Time chrono.TimeAPI
	Tel  telemetry.API
}

// Client is a logged in member of the booking site. A Client serializes its
// operations, the session cookies are never shared with another Client.
type Client struct {
	http         *resty.Client
	locationPath string
	locationId   string
	username     string
	password     string

	time chrono.TimeAPI
	tel  telemetry.API

	mu      sync.Mutex
	session session

	logins  metric.Int64Counter
	retries metric.Int64Counter
}

func NewClient(opts ClientOptions) (*Client, error) {
	assert.NotNil("ClientOptions.Tel", opts.Tel)

	tel := telemetry.NewScopedAPI("noe_scraper", opts.Tel)

	if opts.Username == "" || opts.Password == "" {
		return nil, fmt.Errorf("noe client: username and password are required")
	}
	if opts.LocationPath == "" || opts.LocationId == "" {
		return nil, fmt.Errorf("noe client: location path and location id are required")
	}
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		tel.ReportBroken(report_client_new, fmt.Errorf("parse base url: %w", err), opts.BaseUrl)
		return nil, err
	}
	if baseUrl.Scheme == "" || baseUrl.Host == "" {
		return nil, fmt.Errorf("noe client: base url '%s' must be absolute", opts.BaseUrl)
	}

	clock := opts.Time
	if clock == nil {
		clock, err = chrono.NewStandardImpl()
		if err != nil {
			return nil, err
		}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = default_timeout
	}

	httpClient := resty.New()
	httpClient.SetBaseURL(strings.TrimSuffix(opts.BaseUrl, "/"))
	// cookies are managed by hand, the login has to copy one of them
	httpClient.SetCookieJar(nil)
	if opts.CloudflareBypass {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}
	httpClient.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	// the login answers with a redirect that carries the session cookies
	httpClient.SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}))
	httpClient.SetTimeout(timeout)

	telemetry.InstrumentResty(httpClient, "scrapers/noe/http", tel)
	if opts.Capture != nil {
		restyutil.Capture(httpClient, opts.Capture, "password")
	}

	logins, err := meter.Int64Counter("noe.logins")
	if err != nil {
		return nil, err
	}
	retries, err := meter.Int64Counter("noe.session_retries")
	if err != nil {
		return nil, err
	}

	return &Client{
		http:         httpClient,
		locationPath: opts.LocationPath,
		locationId:   opts.LocationId,
		username:     opts.Username,
		password:     opts.Password,
		time:         clock,
		tel:          tel,
		session:      session{cookies: map[string]string{}},
		logins:       logins,
		retries:      retries,
	}, nil
}

func (c *Client) login(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "client:login")
	defer span.End()

	loginError := func(err error) error {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("%w: %w", LoginFailed, err)
	}

	c.session.clear()
	c.logins.Add(ctx, 1)

	res, err := c.http.R().
		SetContext(ctx).
		SetFormDataFromValues(loginForm(c.username, c.password, c.locationPath)).
		Post(c.locationPath)
	if err != nil {
		c.tel.ReportBroken(report_client_login, fmt.Errorf("fetch: %w", err))
		return loginError(err)
	}
	if res.StatusCode() >= 400 {
		err := fmt.Errorf("unexpected status %s", res.Status())
		c.tel.ReportBroken(report_client_login, err)
		return loginError(err)
	}

	received := map[string]string{}
	for _, cookie := range res.Cookies() {
		if cookie.Value == "" || cookie.MaxAge < 0 {
			continue
		}
		received[cookie.Name] = cookie.Value
	}
	if len(received) < min_login_cookies {
		err := fmt.Errorf(
			"expected at least %d cookies, got %d (wrong credentials or the login form changed)",
			min_login_cookies, len(received),
		)
		c.tel.ReportWarning(report_client_login, err)
		return loginError(err)
	}
	primary, ok := received[session_cookie]
	if !ok {
		err := fmt.Errorf("login did not set %s", session_cookie)
		c.tel.ReportBroken(report_client_login, err)
		return loginError(err)
	}

	for name, value := range received {
		c.session.set(name, value)
	}
	c.session.set(session_cookie_copy, primary)

	c.tel.ReportDebug("logged in", len(c.session.cookies))
	return nil
}

// send posts form to the location page with the current session.
func (c *Client) send(ctx context.Context, id string, form url.Values) (string, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetCookies(c.session.httpCookies()).
		SetFormDataFromValues(form).
		Post(c.locationPath)
	if err != nil {
		c.tel.ReportBroken(report_client_post, fmt.Errorf("fetch: %w", err), id)
		return "", err
	}
	if res.StatusCode() >= 400 {
		err := fmt.Errorf("%s: unexpected status %s", id, res.Status())
		c.tel.ReportBroken(report_client_post, err, id)
		return "", err
	}

	c.session.merge(res.Cookies(), c.time.Now())
	return res.String(), nil
}

// post sends a request, logging in first if needed. If the server answers with
// its sign-in page the session is rebuilt and the request retried, at most
// max_session_retries times.
func (c *Client) post(ctx context.Context, id string, form url.Values) (string, error) {
	if !c.session.authenticated() {
		err := c.login(ctx)
		if err != nil {
			return "", err
		}
	}

	for attempt := 0; ; attempt++ {
		body, err := c.send(ctx, id, form)
		if err != nil {
			return "", err
		}
		if !IsSessionExpired(body) {
			return body, nil
		}

		if attempt >= max_session_retries {
			c.session.clear()
			c.tel.ReportBroken(report_client_post, SessionExpired, id, attempt)
			return "", fmt.Errorf("%s: %w", id, SessionExpired)
		}

		c.tel.ReportWarning(report_client_post, "session expired, logging in again", id)
		c.retries.Add(ctx, 1)

		err = c.login(ctx)
		if err != nil {
			return "", err
		}
	}
}
