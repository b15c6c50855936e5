package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/ardanlabs/conf/v3"
	"github.com/authentimart/cart-api/api"
	"github.com/authentimart/cart-api/cartstore"
	"github.com/authentimart/cart-api/config"
	"github.com/authentimart/cart-api/database"
	"github.com/authentimart/cart-api/migrations"
	"github.com/authentimart/cart-api/rate"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if err := Run(log); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func Run(logger *logrus.Logger) error {
	logger.Info("starting server")
	defer logger.Info("shutdown complete")

	const prefix = "CARTAPI"
	var cfg config.Config
	if help, err := conf.Parse(prefix, &cfg); err != nil {
		if err == conf.ErrHelpWanted {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	lw := logger.Writer()
	defer lw.Close()
	errLog := log.New(lw, "", 0)

	db, err := database.Open(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to open db connection: %w", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := database.StatusCheck(ctx, db); err != nil {
		return fmt.Errorf("database not reachable: %w", err)
	}

	if err := database.Migrate(db, migrations.FS); err != nil {
		return fmt.Errorf("migrating database: %w", err)
	}

	store, err := openCartStore(cfg, logger)
	if err != nil {
		return err
	}

	sessionManager := scs.New()
	sessionManager.Lifetime = 30 * 24 * time.Hour
	sessionManager.Cookie.Persist = true

	limiter := rate.NewLimiter(cfg.Rate.VoucherRPS, cfg.Rate.VoucherBurst, cfg.Rate.Expiry)

	mux := api.APIMux(api.APIConfig{
		CorsOrigin:  cfg.Cors.Origin,
		Log:         logger,
		DB:          db,
		Session:     sessionManager,
		CartStore:   store,
		Cart:        cfg.Cart,
		VoucherRate: limiter,
	})

	srv := http.Server{
		Handler:      mux,
		Addr:         cfg.Web.Address,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     errLog,
	}

	serverErrors := make(chan error, 1)

	go func() {
		logger.Infof("starting api router at %s", srv.Addr)
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Infof("shutting down: signal %s", sig)

		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			srv.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}
	return nil
}

func openCartStore(cfg config.Config, logger *logrus.Logger) (cartstore.Store, error) {
	switch cfg.Cart.Store {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("redis not reachable at %s: %w", cfg.Redis.Address, err)
		}

		return cartstore.NewRedis(client, cfg.Cart.TTL), nil

	case "file":
		store, err := cartstore.NewFile(cfg.Cart.Dir)
		if err != nil {
			return nil, fmt.Errorf("opening file cart store: %w", err)
		}
		logger.Infof("using file cart store at %s", cfg.Cart.Dir)
		return store, nil
	}

	return nil, fmt.Errorf("unknown cart store %q", cfg.Cart.Store)
}
