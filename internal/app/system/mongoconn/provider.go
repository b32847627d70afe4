// Package mongoconn owns the process-wide MongoDB connection.
//
// A Provider is constructed once in bootstrap and passed to whatever needs the
// store. Connect is idempotent and safe to call concurrently: callers that
// arrive while a connection attempt is in flight wait for it and share its
// result instead of dialing again. Handle fails with apperr.ErrNotReady until
// a Connect has succeeded, and Disconnect releases the handle (a no-op when
// nothing is connected).
package mongoconn

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dalemusser/coursehub/internal/app/system/apperr"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// errDisconnectedDuringConnect is returned to callers whose dial was overtaken
// by Disconnect.
var errDisconnectedDuringConnect = errors.New("provider disconnected while connecting")

// DefaultConnectTimeout bounds the initial dial and ping when Options leaves it unset.
const DefaultConnectTimeout = 10 * time.Second

// Handle is an open, usable connection to the store.
type Handle struct {
	Client   *mongo.Client
	Database *mongo.Database
}

// Options configures how the Provider dials.
type Options struct {
	Database       string
	MaxPoolSize    uint64
	MinPoolSize    uint64
	ConnectTimeout time.Duration
}

// Provider lazily establishes and holds the single shared Handle.
type Provider struct {
	opts Options
	log  *zap.Logger

	mu     sync.RWMutex
	handle *Handle
	uri    string
	epoch  uint64 // bumped by Disconnect; a connect that straddles it is discarded

	group singleflight.Group

	// swapped in tests so Connect can run without a server
	dial func(ctx context.Context, uri string, o Options) (*mongo.Client, error)
	ping func(ctx context.Context, c *mongo.Client) error
}

// New returns a Provider that is not yet connected.
func New(opts Options, logger *zap.Logger) *Provider {
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = DefaultConnectTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Provider{
		opts: opts,
		log:  logger,
		dial: dialMongo,
		ping: pingPrimary,
	}
}

// Connect establishes the connection if needed and returns the shared Handle.
//
// Once a connection exists every call returns it unchanged, even when uri
// differs (the mismatch is logged). Errors are returned to the caller; the
// provider never retries on its own.
func (p *Provider) Connect(ctx context.Context, uri string) (*Handle, error) {
	if h := p.current(); h != nil {
		p.warnOnURIChange(uri)
		return h, nil
	}

	v, err, _ := p.group.Do("connect", func() (any, error) {
		// A previous flight may have finished between current() and Do.
		if h := p.current(); h != nil {
			return h, nil
		}
		return p.connect(ctx, uri)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Handle), nil
}

func (p *Provider) connect(ctx context.Context, uri string) (*Handle, error) {
	start := time.Now()
	p.mu.RLock()
	epoch := p.epoch
	p.mu.RUnlock()

	cctx, cancel := context.WithTimeout(ctx, p.opts.ConnectTimeout)
	defer cancel()

	client, err := p.dial(cctx, uri, p.opts)
	if err != nil {
		p.log.Error("mongo connect failed", zap.Error(err))
		return nil, apperr.Store("connect to mongo", err)
	}
	if err := p.ping(cctx, client); err != nil {
		p.log.Error("mongo ping failed", zap.Error(err))
		closeClient(client)
		return nil, apperr.Store("ping mongo", err)
	}

	h := &Handle{Client: client, Database: client.Database(p.opts.Database)}

	p.mu.Lock()
	if p.epoch != epoch {
		p.mu.Unlock()
		p.log.Warn("mongo disconnected while connecting; closing new client")
		closeClient(client)
		return nil, apperr.Store("connect to mongo", errDisconnectedDuringConnect)
	}
	p.handle = h
	p.uri = uri
	p.mu.Unlock()

	p.log.Info("connected to mongo",
		zap.String("database", p.opts.Database),
		zap.Duration("took", time.Since(start)))
	return h, nil
}

// Handle returns the shared handle, or apperr.ErrNotReady before Connect succeeds.
func (p *Provider) Handle() (*Handle, error) {
	if h := p.current(); h != nil {
		return h, nil
	}
	return nil, apperr.ErrNotReady
}

// Database returns the configured database of the shared handle.
func (p *Provider) Database() (*mongo.Database, error) {
	h, err := p.Handle()
	if err != nil {
		return nil, err
	}
	return h.Database, nil
}

// Ping checks the primary through the shared handle.
func (p *Provider) Ping(ctx context.Context) error {
	h, err := p.Handle()
	if err != nil {
		return err
	}
	if err := p.ping(ctx, h.Client); err != nil {
		return apperr.Store("ping mongo", err)
	}
	return nil
}

// Disconnect releases the handle. It is safe to call when never connected
// and safe to call more than once. A Connect still in flight when Disconnect
// runs closes its client instead of publishing it.
func (p *Provider) Disconnect(ctx context.Context) error {
	p.mu.Lock()
	p.epoch++
	h := p.handle
	p.handle = nil
	p.uri = ""
	p.mu.Unlock()

	if h == nil {
		return nil
	}
	p.log.Info("disconnecting mongo client")
	if err := h.Client.Disconnect(ctx); err != nil {
		return fmt.Errorf("mongo disconnect: %w", err)
	}
	return nil
}

// closeClient releases a client that was never published.
func closeClient(c *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_ = c.Disconnect(ctx)
}

func (p *Provider) current() *Handle {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.handle
}

func (p *Provider) warnOnURIChange(uri string) {
	p.mu.RLock()
	prev := p.uri
	p.mu.RUnlock()
	if uri != "" && prev != "" && uri != prev {
		p.log.Warn("mongo already connected; ignoring different uri")
	}
}

func dialMongo(ctx context.Context, uri string, o Options) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(o.ConnectTimeout).
		SetServerSelectionTimeout(o.ConnectTimeout)
	if o.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(o.MaxPoolSize)
	}
	if o.MinPoolSize > 0 {
		opts.SetMinPoolSize(o.MinPoolSize)
	}
	return mongo.Connect(ctx, opts)
}

func pingPrimary(ctx context.Context, c *mongo.Client) error {
	return c.Ping(ctx, readpref.Primary())
}
