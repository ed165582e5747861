package status

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/undeconstructed/gotichu/client"
)

// Gateway serves the client's state over HTTP, for watching a game from a
// browser or a script.
type Gateway struct {
	box       *client.Box
	connected func() bool
	log       zerolog.Logger
}

func NewGateway(box *client.Box, connected func() bool) *Gateway {
	log := log.With().Str("gw", "status").Logger()
	return &Gateway{box: box, connected: connected, log: log}
}

// Router builds the routes.
func (g *Gateway) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(func(c *gin.Context) {
		start := time.Now()
		c.Next()
		g.log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})

	a := r.Group("/api")
	a.GET("/state", g.getState)
	a.GET("/health", g.getHealth)
	return r
}

func (g *Gateway) getState(c *gin.Context) {
	s := g.box.Get()
	if s == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "not started"})
		return
	}
	c.JSON(http.StatusOK, s)
}

func (g *Gateway) getHealth(c *gin.Context) {
	connected := g.connected != nil && g.connected()
	c.JSON(http.StatusOK, gin.H{"connected": connected})
}

// Run listens on addr until the context ends.
func (g *Gateway) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	g.log.Info().Msgf("status listening on http://%v", ln.Addr())

	s := &http.Server{
		Handler:      g.Router(),
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
	}
	go func() {
		<-ctx.Done()
		ctx1, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = s.Shutdown(ctx1)
	}()

	err = s.Serve(ln)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
