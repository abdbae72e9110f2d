package router

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/tbeaudouin05/finsec-harness/api/config"
	"github.com/tbeaudouin05/finsec-harness/api/services/finsec/models"
)

// Stub is an in-process stand-in for the finsec API. It serves the three
// endpoints the harness exercises under /api, with fault injection for tests
// and local dry runs.
type Stub struct {
	e *echo.Echo

	email, password string
	secret          []byte
	tokenTTL        time.Duration
	clock           func() time.Time
	periodStatus    map[models.Period]int
	billStatus      int

	mu     sync.Mutex
	bills  []models.BillRecord
	logins int
}

type Option func(*Stub)

// WithAccount sets the only credentials login accepts.
func WithAccount(email, password string) Option {
	return func(s *Stub) { s.email, s.password = email, password }
}

// WithSecret sets the HS256 signing key for issued tokens.
func WithSecret(secret string) Option { return func(s *Stub) { s.secret = []byte(secret) } }

// WithPeriodStatus makes the analytics endpoint answer status for period.
func WithPeriodStatus(period models.Period, status int) Option {
	return func(s *Stub) { s.periodStatus[period] = status }
}

// WithBillStatus makes every bill write answer status.
func WithBillStatus(status int) Option { return func(s *Stub) { s.billStatus = status } }

func WithClock(clock func() time.Time) Option { return func(s *Stub) { s.clock = clock } }

// NewRouter returns the stub API.
func NewRouter(opts ...Option) *Stub {
	s := &Stub{
		email:        config.DefaultEmail,
		password:     config.DefaultPassword,
		secret:       []byte("finsec-stub-secret"),
		tokenTTL:     time.Hour,
		clock:        time.Now,
		periodStatus: map[models.Period]int{},
	}
	for _, opt := range opts {
		opt(s)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(requestLogger)

	api := e.Group("/api")
	api.POST("/auth/login", s.login)
	authed := api.Group("", s.requireAuth)
	authed.POST("/bills/add", s.addBill)
	authed.GET("/analytics/spending", s.spending)

	s.e = e
	return s
}

func (s *Stub) ServeHTTP(w http.ResponseWriter, r *http.Request) { s.e.ServeHTTP(w, r) }

// Bills returns a copy of every bill accepted so far.
func (s *Stub) Bills() []models.BillRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.BillRecord(nil), s.bills...)
}

// Logins counts successful logins.
func (s *Stub) Logins() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.logins
}

func errorBody(msg string) map[string]string { return map[string]string{"error": msg} }

func (s *Stub) login(c echo.Context) error {
	var creds models.Credentials
	if err := c.Bind(&creds); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}
	if creds.Email != s.email || creds.Password != s.password {
		return c.JSON(http.StatusUnauthorized, errorBody("invalid credentials"))
	}
	now := s.clock()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   creds.Email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}).SignedString(s.secret)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorBody("failed to sign token"))
	}
	s.mu.Lock()
	s.logins++
	s.mu.Unlock()
	return c.JSON(http.StatusOK, map[string]string{"access_token": token})
}

func (s *Stub) requireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			return c.JSON(http.StatusUnauthorized, errorBody("authorization token required"))
		}
		_, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.secret, nil
		}, jwt.WithTimeFunc(s.clock))
		if err != nil {
			return c.JSON(http.StatusUnauthorized, errorBody("invalid or expired token"))
		}
		return next(c)
	}
}

func (s *Stub) addBill(c echo.Context) error {
	var bill models.BillRecord
	if err := c.Bind(&bill); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
	}
	if err := validateBill(bill); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody(err.Error()))
	}
	if s.billStatus != 0 {
		return c.JSON(s.billStatus, errorBody("bill write rejected"))
	}
	s.mu.Lock()
	s.bills = append(s.bills, bill)
	s.mu.Unlock()
	return c.JSON(http.StatusOK, map[string]string{"message": "Bill added successfully"})
}

func validateBill(b models.BillRecord) error {
	if b.Category == "" {
		return errors.New("category is required")
	}
	if b.Amount <= 0 {
		return errors.New("amount must be positive")
	}
	if _, err := time.Parse(models.DateLayout, b.DueDate); err != nil {
		return errors.New("due_date must be YYYY-MM-DD")
	}
	return nil
}

var periodDays = map[models.Period]int{
	models.PeriodWeek:  7,
	models.PeriodMonth: 30,
	models.PeriodYear:  365,
}

type spendingResponse struct {
	Period     models.Period  `json:"period"`
	Total      int            `json:"total"`
	Count      int            `json:"count"`
	ByCategory map[string]int `json:"by_category"`
}

func (s *Stub) spending(c echo.Context) error {
	period := models.Period(c.QueryParam("period"))
	if !period.Valid() {
		return c.JSON(http.StatusBadRequest, errorBody("period must be week, month or year"))
	}
	if status, ok := s.periodStatus[period]; ok {
		return c.JSON(status, errorBody(fmt.Sprintf("%s analytics unavailable", period)))
	}

	today := s.clock().Format(models.DateLayout)
	cutoff := s.clock().AddDate(0, 0, -periodDays[period]).Format(models.DateLayout)
	resp := spendingResponse{Period: period, ByCategory: map[string]int{}}
	s.mu.Lock()
	for _, b := range s.bills {
		// YYYY-MM-DD compares correctly as a string.
		if b.DueDate > cutoff && b.DueDate <= today {
			resp.Total += b.Amount
			resp.Count++
			resp.ByCategory[b.Category] += b.Amount
		}
	}
	s.mu.Unlock()
	return c.JSON(http.StatusOK, resp)
}

func requestLogger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		slog.Debug("stub request",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", c.Response().Status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
		return err
	}
}
