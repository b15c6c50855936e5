package config

import "time"

type Config struct {
	Web   Web
	Cors  Cors
	DB    DB
	Redis Redis
	Cart  Cart
	Rate  Rate
}

type Web struct {
	Address         string        `conf:"default:0.0.0.0:8000"`
	ReadTimeout     time.Duration `conf:"default:5s"`
	WriteTimeout    time.Duration `conf:"default:10s"`
	IdleTimeout     time.Duration `conf:"default:120s"`
	ShutdownTimeout time.Duration `conf:"default:20s"`
}

type Cors struct {
	Origin string
}

type DB struct {
	User       string `conf:"default:postgres"`
	Password   string `conf:"default:postgres,mask"`
	Host       string `conf:"default:localhost"`
	Name       string `conf:"default:cartapi"`
	DisableTLS bool   `conf:"default:true"`
}

type Redis struct {
	Address  string `conf:"default:localhost:6379"`
	Password string `conf:"mask"`
	DB       int
}

type Cart struct {
	// Store selects the blob backend: redis or file.
	Store string `conf:"default:redis"`
	// Dir is the record directory for the file backend.
	Dir string `conf:"default:/var/lib/cartapi/carts"`
	// TTL is how long an untouched cart survives in Redis.
	TTL time.Duration `conf:"default:720h"`

	ShippingFlatRate int `conf:"default:500"`
	FreeShippingOver int `conf:"default:10000"`
}

type Rate struct {
	// Voucher validation attempts allowed per session.
	VoucherRPS   float64       `conf:"default:1"`
	VoucherBurst int           `conf:"default:5"`
	Expiry       time.Duration `conf:"default:15m"`
}
