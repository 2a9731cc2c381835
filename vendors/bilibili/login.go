package bilibili

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"

	log "github.com/sirupsen/logrus"
)

type QRState int

const (
	QRStateNotStarted QRState = iota
	QRStatePending
	QRStateScanned
	QRStateSuccess
	QRStateExpired
	QRStateError
)

func (s QRState) String() string {
	switch s {
	case QRStateNotStarted:
		return "notStarted"
	case QRStatePending:
		return "pending"
	case QRStateScanned:
		return "scanned"
	case QRStateSuccess:
		return "success"
	case QRStateExpired:
		return "expired"
	case QRStateError:
		return "error"
	default:
		return "unknown"
	}
}

// Terminal states end a QR code instance.
func (s QRState) Terminal() bool {
	return s == QRStateSuccess || s == QRStateExpired || s == QRStateError
}

// Retryable means a new QR code should be requested.
func (s QRState) Retryable() bool {
	return s == QRStateExpired || s == QRStateError
}

// Waiting means the current QR code is still live and should be polled again.
func (s QRState) Waiting() bool {
	return s == QRStatePending || s == QRStateScanned
}

type QRCode struct {
	Flavor string `json:"flavor"`
	Key    string `json:"key"`
	URL    string `json:"url"`
}

type FollowUp struct {
	Name string
	Err  error
}

type PollResult struct {
	State        QRState
	Code         int
	Message      string
	AccessToken  string
	RefreshToken string
	Cookies      map[string]string
	// FollowUps records the identity refreshes run after a successful
	// login. Their failures never change State.
	FollowUps []FollowUp
}

type credentials struct {
	accessToken     string
	refreshToken    string
	appRefreshToken string
	cookies         map[string]string
}

type pollOutcome struct {
	code    int
	message string
	// envelopeError marks a failure outside the per-flavor code table.
	envelopeError bool
	creds         credentials
}

// Flavor is the per-protocol part of the QR login: its endpoints, its code
// table and how credentials are pulled out of a successful poll.
type Flavor struct {
	Name     string
	codes    map[int]QRState
	generate func(ctx context.Context, c *Client) (*QRCode, error)
	poll     func(ctx context.Context, c *Client, key string) (*pollOutcome, error)
}

// State maps a raw poll code. Unknown codes are errors.
func (f *Flavor) State(code int) QRState {
	if s, ok := f.codes[code]; ok {
		return s
	}
	return QRStateError
}

const (
	flavorNameTV  = "tv"
	flavorNameWeb = "web"
)

var (
	FlavorTV = &Flavor{
		Name: flavorNameTV,
		codes: map[int]QRState{
			0:     QRStateSuccess,
			86038: QRStateExpired,
			86039: QRStateScanned,
			86090: QRStateScanned,
		},
		generate: tvGenerate,
		poll:     tvPoll,
	}
	FlavorWeb = &Flavor{
		Name: flavorNameWeb,
		codes: map[int]QRState{
			0:     QRStateSuccess,
			86038: QRStateExpired,
			86090: QRStateScanned,
			86101: QRStatePending,
		},
		generate: webGenerate,
		poll:     webPoll,
	}
)

func FlavorByName(name string) (*Flavor, bool) {
	switch name {
	case flavorNameTV:
		return FlavorTV, true
	case flavorNameWeb:
		return FlavorWeb, true
	}
	return nil, false
}

func tvGenerate(ctx context.Context, c *Client) (*QRCode, error) {
	params := SignApp(map[string]string{
		"local_id": c.conf.TVLocalID,
		"ts":       strconv.FormatInt(c.unix(), 10),
		"mobi_app": c.conf.TVMobiApp,
	}, c.conf.TVAppKey, c.conf.TVAppSec)
	resp, err := c.gateway.PostForm(ctx, c.conf.PassportBaseURL+"/x/passport-tv-login/qrcode/auth_code", params, WithoutCookies())
	if err != nil {
		return nil, err
	}
	data, err := decodeData[tvQRCodeData](resp.Body)
	if err != nil {
		return nil, err
	}
	if data.AuthCode == "" || data.URL == "" {
		return nil, ErrNoQRCode
	}
	return &QRCode{Flavor: flavorNameTV, Key: data.AuthCode, URL: data.URL}, nil
}

func tvPoll(ctx context.Context, c *Client, key string) (*pollOutcome, error) {
	params := SignApp(map[string]string{
		"auth_code": key,
		"local_id":  c.conf.TVLocalID,
		"ts":        strconv.FormatInt(c.unix(), 10),
	}, c.conf.TVAppKey, c.conf.TVAppSec)
	resp, err := c.gateway.PostForm(ctx, c.conf.PassportBaseURL+"/x/passport-tv-login/qrcode/poll", params, WithoutCookies())
	if err != nil {
		return nil, err
	}
	r, err := decodeResp[tvQRPollData](resp.Body)
	if err != nil {
		return nil, err
	}
	out := &pollOutcome{code: r.Code, message: r.Message}
	if r.Code != 0 {
		return out, nil
	}
	if r.Data == nil {
		return nil, &APIError{Code: -1, Message: "empty data"}
	}
	token := r.Data.tvToken
	if token.AccessToken == "" && r.Data.TokenInfo != nil {
		token = *r.Data.TokenInfo
	}
	out.creds.accessToken = token.AccessToken
	out.creds.appRefreshToken = token.RefreshToken
	if r.Data.CookieInfo != nil {
		cookies := make(map[string]string, len(r.Data.CookieInfo.Cookies))
		for _, ck := range r.Data.CookieInfo.Cookies {
			if ck.Name != "" {
				cookies[ck.Name] = ck.Value
			}
		}
		out.creds.cookies = cookies
	}
	return out, nil
}

func webGenerate(ctx context.Context, c *Client) (*QRCode, error) {
	resp, err := c.gateway.Get(ctx, c.conf.PassportBaseURL+"/x/passport-login/web/qrcode/generate", nil, WithoutCookies())
	if err != nil {
		return nil, err
	}
	data, err := decodeData[webQRCodeData](resp.Body)
	if err != nil {
		return nil, err
	}
	if data.QrcodeKey == "" || data.URL == "" {
		return nil, ErrNoQRCode
	}
	return &QRCode{Flavor: flavorNameWeb, Key: data.QrcodeKey, URL: data.URL}, nil
}

func webPoll(ctx context.Context, c *Client, key string) (*pollOutcome, error) {
	resp, err := c.gateway.Get(ctx, c.conf.PassportBaseURL+"/x/passport-login/web/qrcode/poll",
		map[string]string{"qrcode_key": key},
		WithoutCookies(),
	)
	if err != nil {
		return nil, err
	}
	r, err := decodeResp[webQRPollData](resp.Body)
	if err != nil {
		return nil, err
	}
	if r.Code != 0 {
		return &pollOutcome{code: r.Code, message: r.Message, envelopeError: true}, nil
	}
	if r.Data == nil {
		return nil, &APIError{Code: -1, Message: "empty data"}
	}
	out := &pollOutcome{code: r.Data.Code, message: r.Data.Message}
	if r.Data.Code == 0 {
		out.creds.refreshToken = r.Data.RefreshToken
		out.creds.cookies = resp.Cookies()
	}
	return out, nil
}

// Login drives the request/poll QR protocols. It never loops: cadence,
// timeout and cancellation belong to the caller.
type Login struct {
	c *Client
}

func (l *Login) RequestQRCode(ctx context.Context, f *Flavor) (*QRCode, error) {
	qr, err := f.generate(ctx, l.c)
	if err != nil {
		return nil, fmt.Errorf("%s qrcode: %w", f.Name, err)
	}
	return qr, nil
}

// Poll performs exactly one poll request for key and maps the answer.
func (l *Login) Poll(ctx context.Context, f *Flavor, key string) *PollResult {
	out, err := f.poll(ctx, l.c, key)
	if err != nil {
		return errorResult(err)
	}
	state := f.State(out.code)
	if out.envelopeError {
		state = QRStateError
	}
	res := &PollResult{
		State:   state,
		Code:    out.code,
		Message: out.message,
	}
	if state != QRStateSuccess {
		return res
	}
	if err := l.persist(ctx, out.creds); err != nil {
		return &PollResult{State: QRStateError, Code: -1, Message: err.Error()}
	}
	res.AccessToken = out.creds.accessToken
	res.RefreshToken = out.creds.refreshToken
	if res.RefreshToken == "" {
		res.RefreshToken = out.creds.appRefreshToken
	}
	res.Cookies = out.creds.cookies
	res.FollowUps = l.followUps(ctx, out.creds.cookies)
	return res
}

func errorResult(err error) *PollResult {
	var (
		te *TransportError
		ae *APIError
	)
	switch {
	case errors.As(err, &te) && te.StatusCode != 0:
		return &PollResult{State: QRStateError, Code: te.StatusCode, Message: "http_" + strconv.Itoa(te.StatusCode)}
	case errors.As(err, &ae):
		return &PollResult{State: QRStateError, Code: ae.Code, Message: ae.Message}
	default:
		return &PollResult{State: QRStateError, Code: -1, Message: err.Error()}
	}
}

func (l *Login) persist(ctx context.Context, creds credentials) error {
	return l.c.store.Update(ctx, func(a *Account) error {
		a.Cookies = MergeCookies(a.Cookies, creds.cookies)
		if creds.accessToken != "" {
			a.AccessToken = creds.accessToken
		}
		if creds.refreshToken != "" {
			a.RefreshToken = creds.refreshToken
		}
		if creds.appRefreshToken != "" {
			a.AppRefreshToken = creds.appRefreshToken
		}
		a.UpdatedAtMillis = l.c.millis()
		return nil
	})
}

// followUps refreshes identity material after cookies were obtained. Every
// step is attempted once and its failure is recorded and dropped.
func (l *Login) followUps(ctx context.Context, cookies map[string]string) []FollowUp {
	if len(cookies) == 0 {
		return nil
	}
	var results []FollowUp
	record := func(name string, err error) {
		if err != nil {
			log.Debugf("bilibili: login follow-up %s failed: %v", name, err)
		}
		results = append(results, FollowUp{Name: name, Err: err})
	}

	_, err := l.c.Identity.RefreshBuvid(ctx)
	record("buvid", err)
	_, err = l.c.Identity.RefreshWbiKeys(ctx)
	record("wbi", err)

	csrf := cookies[CookieCSRF]
	if csrf == "" {
		if account, err := l.c.store.Read(ctx); err == nil {
			csrf = account.CSRFToken()
		}
	}
	if csrf != "" {
		_, err = l.c.Identity.RefreshTicket(ctx, csrf)
		record("ticket", err)
	}
	return results
}

// QRSession tracks one live QR code. Requesting a new code supersedes the
// previous one; nothing is sent to the server for the old code.
type QRSession struct {
	login  *Login
	flavor *Flavor

	mu   sync.Mutex
	qr   *QRCode
	last *PollResult
}

func (l *Login) NewSession(f *Flavor) *QRSession {
	return &QRSession{login: l, flavor: f}
}

func (s *QRSession) Flavor() *Flavor {
	return s.flavor
}

func (s *QRSession) Request(ctx context.Context) (*QRCode, error) {
	qr, err := s.login.RequestQRCode(ctx, s.flavor)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.qr = qr
	s.last = nil
	return qr, nil
}

// Poll checks the current code once. A terminal result is returned again
// without a request.
func (s *QRSession) Poll(ctx context.Context) (*PollResult, error) {
	s.mu.Lock()
	qr, last := s.qr, s.last
	s.mu.Unlock()
	if qr == nil {
		return nil, ErrNoQRCode
	}
	if last != nil && last.State.Terminal() {
		return last, nil
	}
	res := s.login.Poll(ctx, s.flavor, qr.Key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.qr == qr {
		s.last = res
	}
	return res, nil
}

func (s *QRSession) State() QRState {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case s.qr == nil:
		return QRStateNotStarted
	case s.last == nil:
		return QRStatePending
	default:
		return s.last.State
	}
}

func (s *QRSession) QRCode() *QRCode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.qr
}
