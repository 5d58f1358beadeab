// Package auth handles accounts, session cookies and per-IP rate limiting.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"Formulary/internal/calc"
	"Formulary/internal/repo"
)

const (
	CookieName = "session_token"
	sessionTTL = 30 * 24 * time.Hour
)

type contextKey string

const userIDKey contextKey = "userID"

// UserID returns the id Middleware stored for an authenticated request.
func UserID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(userIDKey).(int)
	return id, ok
}

type Env struct {
	Key  []byte
	Repo repo.Repository
	Log  *zap.Logger
	// Secure marks cookies HTTPS only.
	Secure bool
}

type IPRateLimiter struct {
	ips map[string]*rate.Limiter
	mu  sync.Mutex
	r   rate.Limit
	b   int
}

type LoginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

func NewIPRateLimiter(r rate.Limit, b int) *IPRateLimiter {
	return &IPRateLimiter{
		ips: make(map[string]*rate.Limiter),
		r:   r,
		b:   b,
	}
}

func (i *IPRateLimiter) getLimiter(ip string) *rate.Limiter {
	i.mu.Lock()
	defer i.mu.Unlock()

	limiter, exists := i.ips[ip]
	if !exists {
		limiter = rate.NewLimiter(i.r, i.b)
		i.ips[ip] = limiter
	}
	return limiter
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// LimitMiddleware answers 429 once a client IP exceeds its token bucket.
func (i *IPRateLimiter) LimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !i.getLimiter(clientIP(r)).Allow() {
			w.Header().Set("Retry-After", "1")
			calc.WriteJSON(w, http.StatusTooManyRequests, calc.ErrorBody{Error: "rate_limited", Message: "Too Many Requests. Try again later."})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

// NewToken signs an HS256 session token for the user.
func (env *Env) NewToken(userID int, login string, now time.Time) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"login":   login,
		"exp":     now.Add(sessionTTL).Unix(),
	})
	return token.SignedString(env.Key)
}

// ParseToken validates an HS256 token and returns its user id.
func (env *Env) ParseToken(tokenString string) (int, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return env.Key, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return 0, err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("auth: unexpected claims")
	}
	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0, errors.New("auth: token has no user_id")
	}
	if login, _ := claims["login"].(string); login == "" {
		return 0, errors.New("auth: token has no login")
	}
	return int(id), nil
}

func unauthorized(w http.ResponseWriter) {
	calc.WriteJSON(w, http.StatusUnauthorized, calc.ErrorBody{Error: "unauthorized", Message: "Please log in"})
}

// Middleware requires a valid session cookie and stores the user id in the context.
func (env *Env) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(CookieName)
		if err != nil {
			unauthorized(w)
			return
		}
		id, err := env.ParseToken(cookie.Value)
		if err != nil {
			env.Log.Debug("rejected session token", zap.Error(err))
			unauthorized(w)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, id)))
	})
}

func (env *Env) addCookie(w http.ResponseWriter, userID int, login string) error {
	now := time.Now()
	tokenString, err := env.NewToken(userID, login, now)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    tokenString,
		Expires:  now.Add(sessionTTL),
		Path:     "/",
		HttpOnly: true,
		Secure:   env.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (env *Env) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		calc.BadRequest(w, "Invalid request payload")
		return
	}
	req.Login = strings.TrimSpace(req.Login)
	req.Email = strings.TrimSpace(req.Email)
	if req.Login == "" || req.Email == "" || req.Password == "" {
		calc.BadRequest(w, "Login, email and password required")
		return
	}
	if len(req.Password) < 6 {
		calc.BadRequest(w, "Password must be at least 6 characters")
		return
	}

	hashedPassword, err := HashPassword(req.Password)
	if err != nil {
		calc.WriteError(w, env.Log, err)
		return
	}
	id, err := env.Repo.CreateUser(r.Context(), req.Login, req.Email, hashedPassword)
	if errors.Is(err, repo.ErrDuplicate) {
		calc.WriteJSON(w, http.StatusConflict, calc.ErrorBody{Error: "conflict", Message: "User already exists"})
		return
	}
	if err != nil {
		calc.WriteError(w, env.Log, err)
		return
	}
	if err := env.addCookie(w, id, req.Login); err != nil {
		calc.WriteError(w, env.Log, err)
		return
	}
	env.Log.Info("user registered", zap.Int("user_id", id))
	calc.WriteJSON(w, http.StatusCreated, map[string]any{"id": id, "login": req.Login})
}

func (env *Env) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		calc.BadRequest(w, "Invalid request payload")
		return
	}
	req.Login = strings.TrimSpace(req.Login)
	if req.Login == "" || req.Password == "" {
		calc.BadRequest(w, "Login and password required")
		return
	}

	id, storedHash, err := env.Repo.GetByLogin(r.Context(), req.Login)
	if err != nil && !errors.Is(err, repo.ErrNotFound) {
		calc.WriteError(w, env.Log, err)
		return
	}
	if err != nil || bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(req.Password)) != nil {
		calc.WriteJSON(w, http.StatusUnauthorized, calc.ErrorBody{Error: "unauthorized", Message: "Invalid login or password"})
		return
	}
	if err := env.addCookie(w, id, req.Login); err != nil {
		calc.WriteError(w, env.Log, err)
		return
	}
	calc.WriteJSON(w, http.StatusOK, map[string]any{"id": id, "login": req.Login})
}

func (env *Env) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: CookieName, Value: "", Path: "/", MaxAge: -1, HttpOnly: true, Secure: env.Secure})
	w.WriteHeader(http.StatusNoContent)
}
