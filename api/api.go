package api

import (
	"context"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/authentimart/cart-api/api/middleware"
	"github.com/authentimart/cart-api/api/web"
	"github.com/authentimart/cart-api/cartstore"
	"github.com/authentimart/cart-api/config"
	"github.com/authentimart/cart-api/core/cart"
	"github.com/authentimart/cart-api/core/order"
	"github.com/authentimart/cart-api/core/product"
	"github.com/authentimart/cart-api/core/session"
	"github.com/authentimart/cart-api/core/voucher"
	"github.com/authentimart/cart-api/rate"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type APIConfig struct {
	CorsOrigin  string
	Log         logrus.FieldLogger
	DB          *sqlx.DB
	Session     *scs.SessionManager
	CartStore   cartstore.Store
	Cart        config.Cart
	VoucherRate *rate.Limiter
}

type api struct {
	*mux.Router
	mw  []web.Middleware
	log logrus.FieldLogger
}

func APIMux(cfg APIConfig) http.Handler {
	a := &api{
		Router: mux.NewRouter(),
		log:    cfg.Log,
	}

	a.mw = append(a.mw, session.LoadAndSave(cfg.Session))
	a.mw = append(a.mw, middleware.RequestID())
	a.mw = append(a.mw, middleware.Logger(cfg.Log))
	a.mw = append(a.mw, middleware.Errors(cfg.Log))
	a.mw = append(a.mw, middleware.Panics())

	if cfg.CorsOrigin != "" {
		a.mw = append(a.mw, middleware.Cors(cfg.CorsOrigin))

		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusNoContent)
			return nil
		}
		a.Handle(http.MethodOptions, "/{path:.*}", h)
	}

	a.mw = append(a.mw, session.WithCart(cfg.Session))

	admin := session.Admin()

	a.Handle(http.MethodGet, "/products", product.HandleList(cfg.DB))
	a.Handle(http.MethodGet, "/products/{id}", product.HandleShow(cfg.DB))
	a.Handle(http.MethodPost, "/products", product.HandleCreate(cfg.DB), admin)
	a.Handle(http.MethodPut, "/products/{id}", product.HandleUpdate(cfg.DB), admin)

	a.Handle(http.MethodGet, "/cart", cart.HandleShow(cfg.CartStore, cfg.Log))
	a.Handle(http.MethodDelete, "/cart", cart.HandleClear(cfg.CartStore, cfg.Log))
	a.Handle(http.MethodPut, "/cart/items", cart.HandleAddItem(cfg.DB, cfg.CartStore, cfg.Log))
	a.Handle(http.MethodPut, "/cart/items/{product_id}", cart.HandleSetQuantity(cfg.CartStore, cfg.Log))
	a.Handle(http.MethodDelete, "/cart/items/{product_id}", cart.HandleRemoveItem(cfg.CartStore, cfg.Log))
	a.Handle(http.MethodGet, "/cart/pricing", cart.HandlePricing(cfg.DB, cfg.CartStore, cfg.Log, cfg.Cart))
	a.Handle(http.MethodPost, "/cart/voucher", cart.HandleApplyVoucher(cfg.DB, cfg.CartStore, cfg.Log, cfg.VoucherRate, cfg.Cart))
	a.Handle(http.MethodDelete, "/cart/voucher", cart.HandleRemoveVoucher(cfg.CartStore, cfg.Log))

	a.Handle(http.MethodPost, "/vouchers", voucher.HandleCreate(cfg.DB), admin)
	a.Handle(http.MethodGet, "/vouchers/{code}", voucher.HandleShow(cfg.DB), admin)

	a.Handle(http.MethodPost, "/checkout", order.HandleCheckout(cfg.DB, cfg.CartStore, cfg.Log, cfg.Cart))
	a.Handle(http.MethodGet, "/orders", order.HandleList(cfg.DB))
	a.Handle(http.MethodGet, "/orders/{id}", order.HandleShow(cfg.DB))

	return a.Router
}

func (a *api) Handle(method string, path string, handler web.Handler, mw ...web.Middleware) {
	handler = web.WrapMiddleware(mw, handler)
	handler = web.WrapMiddleware(a.mw, handler)

	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if err := handler(ctx, w, r); err != nil {
			a.log.WithFields(logrus.Fields{
				"req_id":  middleware.ContextRequestID(ctx),
				"message": err,
			}).Error("ERROR")
		}
	})

	a.Router.Handle(path, h).Methods(method)
}
