// Package jar provides the CLI's http.CookieJar. Matching rules come from
// net/http/cookiejar; every cookie the server sets is also written to the
// local database and replayed when the next jar is built, so the session
// outlives the process.
package jar

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/authdemo/internal/client/models"
	"github.com/dmitrijs2005/authdemo/internal/client/repositories/cookies"
	"github.com/dmitrijs2005/authdemo/internal/logging"
	"golang.org/x/net/publicsuffix"
)

type Jar struct {
	mu    sync.RWMutex
	inner *cookiejar.Jar
	repo  cookies.Repository
	log   logging.Logger
	now   func() time.Time
}

// New builds a Jar and loads every unexpired cookie stored in repo.
func New(ctx context.Context, repo cookies.Repository, log logging.Logger) (*Jar, error) {
	return newJar(ctx, repo, log, time.Now)
}

func newInner() (*cookiejar.Jar, error) {
	return cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
}

func newJar(ctx context.Context, repo cookies.Repository, log logging.Logger, now func() time.Time) (*Jar, error) {
	inner, err := newInner()
	if err != nil {
		return nil, err
	}
	j := &Jar{inner: inner, repo: repo, log: log, now: now}

	if n, err := repo.DeleteExpired(ctx, now()); err != nil {
		return nil, err
	} else if n > 0 {
		log.Debug(ctx, "dropped expired cookies", "count", n)
	}

	stored, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, c := range stored {
		j.inner.SetCookies(replayURL(c), []*http.Cookie{toHTTPCookie(c)})
	}
	log.Debug(ctx, "cookie jar loaded", "count", len(stored))
	return j, nil
}

func (j *Jar) current() *cookiejar.Jar {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.inner
}

func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	return j.current().Cookies(u)
}

// SetCookies hands cookies to the in-memory jar and mirrors them into the
// repository as one batch. Persistence failures are logged; the in-memory
// jar still has the cookies for the rest of the process.
func (j *Jar) SetCookies(u *url.URL, cks []*http.Cookie) {
	j.current().SetCookies(u, cks)

	ctx := context.Background()
	now := j.now()
	err := j.batch(ctx, func(ctx context.Context, repo cookies.Repository) error {
		for _, c := range cks {
			sc, remove := storedCookie(u, c, now)
			var err error
			if remove {
				err = repo.Delete(ctx, sc.Host, sc.Name, sc.Path)
			} else {
				err = repo.Upsert(ctx, sc)
			}
			if err != nil {
				return fmt.Errorf("cookie %s: %w", c.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		j.log.Warn(ctx, "cookies not persisted", "count", len(cks), "error", err)
	}
}

// Clear forgets every cookie, in memory and on disk.
func (j *Jar) Clear(ctx context.Context) error {
	inner, err := newInner()
	if err != nil {
		return err
	}
	j.mu.Lock()
	j.inner = inner
	j.mu.Unlock()

	if err := j.repo.Clear(ctx); err != nil {
		return err
	}
	j.log.Debug(ctx, "cookie jar cleared")
	return nil
}

func (j *Jar) batch(ctx context.Context, fn func(ctx context.Context, repo cookies.Repository) error) error {
	if b, ok := j.repo.(cookies.Batcher); ok {
		return b.Batch(ctx, fn)
	}
	return fn(ctx, j.repo)
}

// storedCookie converts c, received from u, to its stored form. remove
// reports whether c deletes the cookie instead.
func storedCookie(u *url.URL, c *http.Cookie, now time.Time) (sc models.StoredCookie, remove bool) {
	sc = models.StoredCookie{
		Host:     u.Hostname(),
		Name:     c.Name,
		Path:     c.Path,
		Domain:   c.Domain,
		Value:    c.Value,
		Secure:   c.Secure,
		HttpOnly: c.HttpOnly,
	}
	if sc.Path == "" || !strings.HasPrefix(sc.Path, "/") {
		sc.Path = defaultPath(u.Path)
	}

	switch {
	case c.MaxAge < 0:
		remove = true
	case c.MaxAge > 0:
		sc.Expires = now.Add(time.Duration(c.MaxAge) * time.Second)
	case !c.Expires.IsZero():
		sc.Expires = c.Expires
		remove = !c.Expires.After(now)
	}
	return sc, remove
}

// defaultPath is the RFC 6265 section 5.1.4 default-path of a request path.
func defaultPath(path string) string {
	if path == "" || path[0] != '/' {
		return "/"
	}
	i := strings.LastIndex(path, "/")
	if i == 0 {
		return "/"
	}
	return path[:i]
}

func replayURL(c models.StoredCookie) *url.URL {
	scheme := "http"
	if c.Secure {
		scheme = "https"
	}
	return &url.URL{Scheme: scheme, Host: c.Host, Path: c.Path}
}

func toHTTPCookie(c models.StoredCookie) *http.Cookie {
	return &http.Cookie{
		Name:     c.Name,
		Value:    c.Value,
		Path:     c.Path,
		Domain:   c.Domain,
		Expires:  c.Expires,
		Secure:   c.Secure,
		HttpOnly: c.HttpOnly,
	}
}
